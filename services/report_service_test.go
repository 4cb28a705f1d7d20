package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportOrder(id uint, status models.OrderStatus, payment models.PaymentStatus, total string, at time.Time) models.Order {
	return models.Order{
		ID:            id,
		CustomerName:  "guest",
		TableNumber:   "1",
		Status:        status,
		PaymentStatus: payment,
		Total:         decimal.RequireFromString(total),
		Timestamp:     at,
	}
}

func TestBuildSalesReport(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		reportOrder(1, models.StatusDelivered, models.PaymentPaid, "16.00", base),
		reportOrder(2, models.StatusDelivered, models.PaymentPending, "5.00", base),
		reportOrder(3, models.StatusCancelled, models.PaymentPaid, "9.00", base),
		reportOrder(4, models.StatusDelivered, models.PaymentPaid, "4.25", base.Add(time.Hour)),
		reportOrder(5, models.StatusReady, models.PaymentPaid, "3.00", base),
	}

	r := BuildSalesReport(orders, base)
	assert.True(t, r.TotalRevenue.Equal(decimal.RequireFromString("20.25")), "got %s", r.TotalRevenue)
	assert.Equal(t, 2, r.OrderCount)
	require.Len(t, r.Orders, 2)
	assert.EqualValues(t, 4, r.Orders[0].ID)

	// only the delivered+paid subset moves the revenue
	orders[4].Status = models.StatusPreparing
	assert.True(t, BuildSalesReport(orders, base).TotalRevenue.Equal(r.TotalRevenue))
	orders[1].PaymentStatus = models.PaymentPaid
	assert.True(t, BuildSalesReport(orders, base).TotalRevenue.Equal(decimal.RequireFromString("25.25")))
}

func TestBuildUnpaidReport(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		reportOrder(1, models.StatusDelivered, models.PaymentPending, "10.00", base),
		reportOrder(2, models.StatusCancelled, models.PaymentPending, "2.50", base.Add(time.Minute)),
		reportOrder(3, models.StatusReady, models.PaymentPending, "99.00", base),
		reportOrder(4, models.StatusDelivered, models.PaymentPaid, "7.00", base),
	}

	r := BuildUnpaidReport(orders, base)
	assert.True(t, r.TotalUnpaidRevenue.Equal(decimal.RequireFromString("12.50")))
	require.Len(t, r.Orders, 2)
	assert.EqualValues(t, 2, r.Orders[0].ID, "newest first")
	assert.EqualValues(t, 1, r.Orders[1].ID)
}

func TestBuildReportsEmpty(t *testing.T) {
	r := BuildSalesReport(nil, time.Now())
	assert.True(t, r.TotalRevenue.IsZero())
	assert.NotNil(t, r.Orders)
	assert.Zero(t, BuildUnpaidReport(nil, time.Now()).OrderCount)
}

func TestBuildDashboard(t *testing.T) {
	now := time.Now()
	d := BuildDashboard([]models.Order{
		reportOrder(1, models.StatusReceived, models.PaymentPending, "1.00", now),
		reportOrder(2, models.StatusPreparing, models.PaymentPending, "1.00", now),
		reportOrder(3, models.StatusDelivered, models.PaymentPaid, "8.00", now),
		reportOrder(4, models.StatusCancelled, models.PaymentPending, "3.00", now),
		reportOrder(5, models.StatusCancelled, models.PaymentPaid, "2.00", now),
	})
	assert.Equal(t, 5, d.TotalOrders)
	assert.Equal(t, 2, d.ActiveOrders)
	assert.Equal(t, 1, d.ByStatus[models.StatusPreparing])
	assert.Equal(t, 0, d.ByStatus[models.StatusReady])
	assert.Equal(t, 3, d.ByPayment[models.PaymentPending])
	assert.True(t, d.Revenue.Equal(decimal.NewFromInt(8)), "cancelled orders are not revenue")
	assert.True(t, d.OutstandingDebt.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 2, d.Clearable)
}

func TestTableLabel(t *testing.T) {
	takeaway := reportOrder(1, models.StatusDelivered, models.PaymentPaid, "1.00", time.Now())
	takeaway.TableNumber = models.TakeawayTable
	assert.Equal(t, "Takeaway", tableLabel(&takeaway))

	seated := reportOrder(2, models.StatusDelivered, models.PaymentPaid, "1.00", time.Now())
	seated.TableNumber = "7"
	assert.Equal(t, "7", tableLabel(&seated))
}

func TestReportServiceAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReportService(db)
	ctx := context.Background()

	_, err := reports.Sales(ctx, waiter)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = reports.Unpaid(ctx, models.Anonymous)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = reports.Dashboard(ctx, chef)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceSalesAfterPayment(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db, nil)
	reports := NewReportService(db)
	ctx := context.Background()

	o := placeOrder(t, orders,
		OrderItemInput{MenuItemID: cappuccinoID, Quantity: 1},
		OrderItemInput{MenuItemID: spaghettiID, Quantity: 1},
	)
	forceStatus(t, db, o.ID, models.StatusDelivered, models.PaymentPending)

	unpaid, err := reports.Unpaid(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, unpaid.OrderCount)

	_, err = orders.UpdatePaymentStatus(ctx, waiter, o.ID, "Paid")
	require.NoError(t, err)

	sales, err := reports.Sales(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, sales.OrderCount)
	assert.True(t, sales.TotalRevenue.Equal(decimal.RequireFromString("16")))

	unpaid, err = reports.Unpaid(ctx, admin)
	require.NoError(t, err)
	assert.Zero(t, unpaid.OrderCount)

	var buf bytes.Buffer
	require.NoError(t, WriteSalesPDF(&buf, *sales))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
