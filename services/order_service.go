package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerName string           `json:"customer_name"`
	TableNumber  string           `json:"table_number"`
	Items        []OrderItemInput `json:"items"`
	Notes        *string          `json:"notes"`
}

// WaiterBoard splits orders into those still needing attention and those
// delivered and paid.
type WaiterBoard struct {
	Active    []models.Order `json:"active"`
	Completed []models.Order `json:"completed"`
}

type OrderService struct {
	db  *gorm.DB
	now func() time.Time
	dispatcher
}

func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return &OrderService{
		db:         db,
		now:        func() time.Time { return time.Now().UTC() },
		dispatcher: dispatcher{notifier: notifier},
	}
}

// Wait blocks until pending notifications are delivered. Used on shutdown.
func (s *OrderService) Wait() {
	s.wait()
}

func (s *OrderService) withItems(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id asc")
	}).Preload("Items.MenuItem")
}

// CreateOrder places a new order. Chefs and admins do not take orders.
// The total is always derived from current menu prices.
func (s *OrderService) CreateOrder(ctx context.Context, caller models.Caller, in CreateOrderInput) (*models.Order, error) {
	if !caller.IsAnonymous() && (caller.Role == models.RoleChef || caller.Role == models.RoleAdmin) {
		return nil, fmt.Errorf("%w: %s cannot place orders", ErrForbidden, caller.Role)
	}

	name := strings.TrimSpace(in.CustomerName)
	table := strings.TrimSpace(in.TableNumber)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if table == "" {
		return nil, fmt.Errorf("%w: table number is required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}

	ids := make([]uint, 0, len(in.Items))
	for i, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item[%d]: quantity must be > 0", ErrValidation, i)
		}
		ids = append(ids, it.MenuItemID)
	}

	var notes *string
	if in.Notes != nil {
		if n := strings.TrimSpace(*in.Notes); n != "" {
			notes = &n
		}
	}

	now := s.now()
	order := models.Order{
		CustomerName:  name,
		TableNumber:   table,
		Status:        models.StatusReceived,
		PaymentStatus: models.PaymentPending,
		Notes:         notes,
		Timestamp:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu []models.MenuItem
		if err := tx.Where("id IN ?", ids).Find(&menu).Error; err != nil {
			return fmt.Errorf("load menu items: %w", err)
		}
		prices := make(map[uint]decimal.Decimal, len(menu))
		for _, m := range menu {
			prices[m.ID] = m.Price
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Items))
		for i, it := range in.Items {
			price, ok := prices[it.MenuItemID]
			if !ok {
				return fmt.Errorf("%w: item[%d]: menu item %d does not exist", ErrValidation, i, it.MenuItemID)
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			items = append(items, models.OrderItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
		}
		if total.GreaterThan(models.MaxOrderTotal) {
			return fmt.Errorf("%w: order total %s exceeds %s", ErrValidation, total, models.MaxOrderTotal)
		}
		order.Total = total

		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.GetOrderByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.dispatch(orderEvent(EventOrderCreated, created, now))
	return created, nil
}

// GetOrders returns every order, newest first.
func (s *OrderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.withItems(ctx).Order("timestamp desc, id desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.withItems(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order along the status graph and refreshes its
// timestamp. The update only applies if the status is still the one that
// was checked; otherwise ErrConflict.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, caller models.Caller, id uint, status string) (*models.Order, error) {
	if err := RequireRole(caller, models.RoleWaiter, models.RoleChef, models.RoleAdmin); err != nil {
		return nil, err
	}
	to := models.OrderStatus(strings.TrimSpace(status))
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	var current models.Order
	if err := s.db.WithContext(ctx).Select("id", "status").First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	if err := CheckTransition(caller.Role, current.Status, to); err != nil {
		return nil, err
	}

	now := s.now()
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, current.Status).
		Updates(map[string]interface{}{"status": to, "timestamp": now})
	if res.Error != nil {
		return nil, fmt.Errorf("update order %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d changed concurrently", ErrConflict, id)
	}

	updated, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.dispatch(orderEvent(EventStatusChanged, updated, now))
	return updated, nil
}

// UpdatePaymentStatus marks an order paid. Payment never moves back to
// Pending; repeating the current status returns the order unchanged.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, caller models.Caller, id uint, status string) (*models.Order, error) {
	if err := RequireRole(caller, models.RoleWaiter, models.RoleAdmin); err != nil {
		return nil, err
	}
	to := models.PaymentStatus(strings.TrimSpace(status))
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}

	current, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	noop, err := CheckPaymentTransition(current.PaymentStatus, to)
	if err != nil {
		return nil, err
	}
	if noop {
		return current, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", id, current.PaymentStatus).
		Update("payment_status", to)
	if res.Error != nil {
		return nil, fmt.Errorf("update order %d payment: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d changed concurrently", ErrConflict, id)
	}

	updated, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.dispatch(orderEvent(EventPaymentChanged, updated, s.now()))
	return updated, nil
}

// ClearCompletedOrders deletes every settled order with its items and
// returns how many orders were removed.
func (s *OrderService) ClearCompletedOrders(ctx context.Context, caller models.Caller) (int64, error) {
	if err := RequireRole(caller, models.RoleAdmin); err != nil {
		return 0, err
	}

	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paid []models.Order
		if err := tx.Select("id", "status", "payment_status").
			Where("payment_status = ?", models.PaymentPaid).Find(&paid).Error; err != nil {
			return fmt.Errorf("find paid orders: %w", err)
		}
		var ids []uint
		for i := range paid {
			if paid[i].Settled() {
				ids = append(ids, paid[i].ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete settled order items: %w", err)
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Order{})
		if res.Error != nil {
			return fmt.Errorf("delete settled orders: %w", res.Error)
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.dispatch(OrderEvent{Type: EventOrdersCleared, Cleared: removed, At: s.now()})
	return removed, nil
}

// KitchenQueue lists orders the kitchen is working on, oldest first.
func (s *OrderService) KitchenQueue(ctx context.Context, caller models.Caller) ([]models.Order, error) {
	if err := RequireRole(caller, models.RoleChef, models.RoleAdmin); err != nil {
		return nil, err
	}
	var orders []models.Order
	err := s.withItems(ctx).
		Where("status IN ?", []models.OrderStatus{models.StatusSentToChef, models.StatusPreparing}).
		Order("timestamp asc, id asc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("kitchen queue: %w", err)
	}
	withAllowedNext(caller.Role, orders)
	return orders, nil
}

func withAllowedNext(role models.Role, orders []models.Order) {
	for i := range orders {
		orders[i].AllowedNext = NextStatuses(role, orders[i].Status)
	}
}

func (s *OrderService) WaiterBoard(ctx context.Context, caller models.Caller) (*WaiterBoard, error) {
	if err := RequireRole(caller, models.RoleWaiter, models.RoleAdmin); err != nil {
		return nil, err
	}
	orders, err := s.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	withAllowedNext(caller.Role, orders)
	board := &WaiterBoard{Active: []models.Order{}, Completed: []models.Order{}}
	for _, o := range orders {
		if o.Completed() {
			board.Completed = append(board.Completed, o)
		} else {
			board.Active = append(board.Active, o)
		}
	}
	return board, nil
}
