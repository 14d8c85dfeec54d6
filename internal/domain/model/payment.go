package model

import "time"

type PaymentMethod string

const (
	PaymentMethodBkash  PaymentMethod = "bkash"
	PaymentMethodNagad  PaymentMethod = "nagad"
	PaymentMethodRocket PaymentMethod = "rocket"
	PaymentMethodCard   PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBkash, PaymentMethodNagad, PaymentMethodRocket, PaymentMethodCard:
		return true
	}
	return false
}

type PaymentStatus string

// The processor is mocked: every payment settles instantly.
const PaymentStatusSuccess PaymentStatus = "SUCCESS"

type Payment struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	Order         Order         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TransactionID string        `gorm:"type:varchar(64);not null;uniqueIndex" json:"transaction_id"`
	Amount        float64       `gorm:"not null" json:"amount"` // BDT
	Method        PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
