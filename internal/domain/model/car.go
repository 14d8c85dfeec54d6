package model

import (
	"fmt"
	"time"
)

type CarType string

const (
	CarTypeSedan CarType = "sedan"
	CarTypeSUV   CarType = "suv"
	CarTypeTruck CarType = "truck"
	CarTypeCoupe CarType = "coupe"
)

// CarTypes is the closed set of listing categories.
func CarTypes() []CarType {
	return []CarType{CarTypeSedan, CarTypeSUV, CarTypeTruck, CarTypeCoupe}
}

func (t CarType) Valid() bool {
	switch t {
	case CarTypeSedan, CarTypeSUV, CarTypeTruck, CarTypeCoupe:
		return true
	}
	return false
}

type CarStatus string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusSold      CarStatus = "sold"
)

// ApprovalStatus is the admin moderation state, independent of sale status.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Car struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Make           string         `gorm:"type:varchar(100);not null" json:"make"`
	Model          string         `gorm:"type:varchar(100);not null" json:"model"`
	Year           int            `gorm:"not null" json:"year"`
	Price          float64        `gorm:"not null" json:"price"` // stored in BDT
	Mileage        int            `gorm:"not null" json:"mileage"`
	CarType        CarType        `gorm:"type:varchar(20);not null;index" json:"car_type"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         CarStatus      `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"approval_status"`
	OwnerID        int64          `gorm:"not null;index" json:"owner_id"`
	Owner          User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// At least one contact method is required at creation time.
	ContactEmail    string `gorm:"type:varchar(254)" json:"contact_email"`
	ContactWhatsApp string `gorm:"type:varchar(20)" json:"contact_whatsapp"`

	RegistrationDocURL string `gorm:"type:varchar(512)" json:"registration_doc_url"`

	Images    []CarImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	Followers []User     `gorm:"many2many:car_followers;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Title is the "2018 Toyota Corolla" form used in notification messages.
func (c Car) Title() string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}

type CarImage struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CarID int64  `gorm:"not null;index" json:"car_id"`
	URL   string `gorm:"type:varchar(512);not null" json:"url"`
}
