package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesReport struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderCount   int             `json:"order_count"`
	Orders       []models.Order  `json:"orders"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

type UnpaidReport struct {
	TotalUnpaidRevenue decimal.Decimal `json:"total_unpaid_revenue"`
	OrderCount         int             `json:"order_count"`
	Orders             []models.Order  `json:"orders"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

type Dashboard struct {
	TotalOrders     int                          `json:"total_orders"`
	ActiveOrders    int                          `json:"active_orders"`
	ByStatus        map[models.OrderStatus]int   `json:"by_status"`
	ByPayment       map[models.PaymentStatus]int `json:"by_payment"`
	Revenue         decimal.Decimal              `json:"revenue"`
	OutstandingDebt decimal.Decimal              `json:"outstanding"`
	Clearable       int                          `json:"clearable"`
}

func newestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Timestamp.Equal(orders[j].Timestamp) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].Timestamp.After(orders[j].Timestamp)
	})
}

// BuildSalesReport sums the orders that were delivered and paid.
func BuildSalesReport(orders []models.Order, at time.Time) SalesReport {
	r := SalesReport{TotalRevenue: decimal.Zero, Orders: []models.Order{}, GeneratedAt: at}
	for _, o := range orders {
		if o.Completed() {
			r.Orders = append(r.Orders, o)
			r.TotalRevenue = r.TotalRevenue.Add(o.Total)
		}
	}
	r.OrderCount = len(r.Orders)
	newestFirst(r.Orders)
	return r
}

// BuildUnpaidReport collects finished orders whose payment is still pending.
func BuildUnpaidReport(orders []models.Order, at time.Time) UnpaidReport {
	r := UnpaidReport{TotalUnpaidRevenue: decimal.Zero, Orders: []models.Order{}, GeneratedAt: at}
	for _, o := range orders {
		if o.Status.Terminal() && o.PaymentStatus == models.PaymentPending {
			r.Orders = append(r.Orders, o)
			r.TotalUnpaidRevenue = r.TotalUnpaidRevenue.Add(o.Total)
		}
	}
	r.OrderCount = len(r.Orders)
	newestFirst(r.Orders)
	return r
}

func BuildDashboard(orders []models.Order) Dashboard {
	d := Dashboard{
		ByStatus:        make(map[models.OrderStatus]int, len(models.OrderStatuses)),
		ByPayment:       map[models.PaymentStatus]int{models.PaymentPending: 0, models.PaymentPaid: 0},
		Revenue:         decimal.Zero,
		OutstandingDebt: decimal.Zero,
	}
	for _, s := range models.OrderStatuses {
		d.ByStatus[s] = 0
	}
	for _, o := range orders {
		d.TotalOrders++
		d.ByStatus[o.Status]++
		d.ByPayment[o.PaymentStatus]++
		if !o.Status.Terminal() {
			d.ActiveOrders++
		}
		if o.Settled() {
			d.Clearable++
		}
		switch {
		case o.Completed():
			d.Revenue = d.Revenue.Add(o.Total)
		case o.Status.Terminal() && o.PaymentStatus == models.PaymentPending:
			d.OutstandingDebt = d.OutstandingDebt.Add(o.Total)
		}
	}
	return d
}

// ReportService recomputes every report from a full order scan on each call.
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *ReportService) allOrders(ctx context.Context, caller models.Caller) ([]models.Order, error) {
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").Preload("Items.MenuItem").
		Order("timestamp desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

func (s *ReportService) Sales(ctx context.Context, caller models.Caller) (*SalesReport, error) {
	orders, err := s.allOrders(ctx, caller)
	if err != nil {
		return nil, err
	}
	r := BuildSalesReport(orders, s.now())
	return &r, nil
}

func (s *ReportService) Unpaid(ctx context.Context, caller models.Caller) (*UnpaidReport, error) {
	orders, err := s.allOrders(ctx, caller)
	if err != nil {
		return nil, err
	}
	r := BuildUnpaidReport(orders, s.now())
	return &r, nil
}

func (s *ReportService) Dashboard(ctx context.Context, caller models.Caller) (*Dashboard, error) {
	orders, err := s.allOrders(ctx, caller)
	if err != nil {
		return nil, err
	}
	d := BuildDashboard(orders)
	return &d, nil
}
