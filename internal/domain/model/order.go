package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a buyer's purchase request for one car. At most one PENDING order
// may exist per (buyer, car) pair; the partial unique index is the backstop
// for the in-transaction check in the order usecase.
type Order struct {
	ID      int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerID int64       `gorm:"not null;index:idx_orders_buyer_car;index:uniq_orders_pending_buyer_car,unique,where:status = 'PENDING'" json:"buyer_id"`
	Buyer   User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CarID   int64       `gorm:"not null;index:idx_orders_buyer_car;index:uniq_orders_pending_buyer_car,unique,where:status = 'PENDING';index" json:"car_id"`
	Car     Car         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status  OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	// Optional add-ons selected at purchase time.
	HasWarranty   bool `gorm:"not null;default:false" json:"has_warranty"`
	HasDashcam    bool `gorm:"not null;default:false" json:"has_dashcam"`
	HasSeatCovers bool `gorm:"not null;default:false" json:"has_seatcovers"`
	HasTinting    bool `gorm:"not null;default:false" json:"has_tinting"`

	TotalPrice float64 `gorm:"not null" json:"total_price"` // BDT

	PaymentMethod      PaymentMethod `gorm:"type:varchar(20)" json:"payment_method"`
	PaymentCompletedAt *time.Time    `json:"payment_completed_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
