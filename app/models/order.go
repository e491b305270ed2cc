package models

import "time"

const (
	OrderStatusPending       = "pending"
	OrderStatusProcessing    = "processing"
	OrderStatusPaid          = "paid"
	OrderStatusPaymentFailed = "payment_failed"
	OrderStatusShipped       = "shipped"
	OrderStatusCompleted     = "completed"
	OrderStatusCancelled     = "cancelled"
)

// Order owns one or more payment attempts. Reconciliation only ever pushes
// its status toward a payment-derived value; all other transitions belong to
// the checkout and fulfillment flows.
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderNumber string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_number"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	TotalAmount int64     `gorm:"not null" json:"total_amount"`
	Currency    string    `gorm:"type:varchar(3);not null" json:"currency"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderStatusForPayment returns the order status implied by a new payment
// status, or "" when the payment status does not touch the order.
func OrderStatusForPayment(paymentStatus string) string {
	switch paymentStatus {
	case PaymentStatusSucceeded:
		return OrderStatusPaid
	case PaymentStatusFailed, PaymentStatusCancelled:
		return OrderStatusPaymentFailed
	}
	return ""
}
