package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TakeawayTable is the table number recorded for takeaway orders.
const TakeawayTable = "-"

// MaxOrderTotal is the largest total the decimal(10,2) column can hold.
var MaxOrderTotal = decimal.RequireFromString("99999999.99")

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	TableNumber   string          `gorm:"type:varchar(50);not null" json:"table_number"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'Received';index" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'Pending';index" json:"payment_status"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	Timestamp     time.Time       `gorm:"not null;index" json:"timestamp"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	// statuses the requesting role may move this order to; filled in by
	// the kitchen and waiter views, never stored
	AllowedNext []OrderStatus `gorm:"-" json:"allowed_next,omitempty"`
}

func (o *Order) IsTakeaway() bool {
	t := strings.TrimSpace(o.TableNumber)
	return t == TakeawayTable || strings.EqualFold(t, "takeaway")
}

// Completed orders were delivered and paid. Only these count as sales.
func (o *Order) Completed() bool {
	return o.Status == StatusDelivered && o.PaymentStatus == PaymentPaid
}

// Settled orders are finished and paid; only these may be cleared.
func (o *Order) Settled() bool {
	return o.Status.Terminal() && o.PaymentStatus == PaymentPaid
}
