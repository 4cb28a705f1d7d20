package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shegacafe/cafe-app/database"
	"github.com/shegacafe/cafe-app/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// seeded ids, see database.Seed
const (
	cappuccinoID = 1
	espressoID   = 2
	spaghettiID  = 6
)

var (
	admin    = models.Caller{UserID: 1, Name: "Admin User", Role: models.RoleAdmin}
	waiter   = models.Caller{UserID: 2, Name: "Alex", Role: models.RoleWaiter}
	chef     = models.Caller{UserID: 3, Name: "Ben", Role: models.RoleChef}
	customer = models.Caller{UserID: 4, Name: "John Doe", Role: models.RoleCustomer}
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db))
	return db
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []OrderEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, ev OrderEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

func (n *recordingNotifier) Events() []OrderEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]OrderEvent(nil), n.events...)
}

func placeOrder(t *testing.T, svc *OrderService, items ...OrderItemInput) *models.Order {
	t.Helper()
	if len(items) == 0 {
		items = []OrderItemInput{{MenuItemID: cappuccinoID, Quantity: 1}}
	}
	order, err := svc.CreateOrder(context.Background(), models.Anonymous, CreateOrderInput{
		CustomerName: "Alice",
		TableNumber:  "5",
		Items:        items,
	})
	require.NoError(t, err)
	return order
}

// forceStatus sets an order's state directly, bypassing the state machine.
func forceStatus(t *testing.T, db *gorm.DB, id uint, status models.OrderStatus, payment models.PaymentStatus) {
	t.Helper()
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "payment_status": payment}).Error)
}

// interfereOnNextUpdate runs sql on the update's own connection right before
// the next UPDATE of the orders table, like a second writer getting there
// first.
func interfereOnNextUpdate(t *testing.T, db *gorm.DB, sql string, args ...interface{}) {
	t.Helper()
	var once sync.Once
	err := db.Callback().Update().Before("gorm:update").Register("test:interfere", func(tx *gorm.DB) {
		if tx.Statement.Table != "orders" {
			return
		}
		once.Do(func() {
			if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, sql, args...); err != nil {
				tx.AddError(err)
			}
		})
	})
	require.NoError(t, err)
}
