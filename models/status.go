package models

type OrderStatus string

const (
	StatusReceived   OrderStatus = "Received"
	StatusSentToChef OrderStatus = "Sent to Chef"
	StatusPreparing  OrderStatus = "Preparing"
	StatusReady      OrderStatus = "Ready"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in pipeline order, Cancelled last.
var OrderStatuses = []OrderStatus{
	StatusReceived,
	StatusSentToChef,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentPaid
}
