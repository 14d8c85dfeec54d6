package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile holds the optional WhatsApp contact number.
type UserProfile struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	WhatsAppNumber string `gorm:"type:varchar(20)" json:"whatsapp_number"`
}
