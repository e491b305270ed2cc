package models

import "time"

const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusSucceeded  = "succeeded"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"
)

// Payment is a single payment attempt against an order. One order can carry
// several attempts; reconciliation always acts on individual payments.
type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OrderID           uint      `gorm:"not null;index" json:"order_id"`
	ExternalReference *string   `gorm:"type:varchar(191);uniqueIndex:ux_payments_external_reference" json:"external_reference,omitempty"`
	Amount            int64     `gorm:"not null" json:"amount"`
	Currency          string    `gorm:"type:varchar(3);not null" json:"currency"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_payments_status_updated,priority:1" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime;index:idx_payments_status_updated,priority:2" json:"updated_at"`
}

// IsTerminalPaymentStatus reports whether a payment status can no longer change.
func IsTerminalPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// HasExternalReference reports whether the payment is tracked by the gateway.
func (p *Payment) HasExternalReference() bool {
	return p.ExternalReference != nil && *p.ExternalReference != ""
}
