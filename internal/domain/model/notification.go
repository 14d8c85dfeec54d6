package model

import "time"

// Notification is created only as a side effect of other state transitions.
// Nothing mutates it afterwards except the is_read flag.
type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Message   string    `gorm:"type:varchar(255);not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
