package model

import "time"

type AuditAction string

const (
	AuditActionApproveCar AuditAction = "APPROVE_CAR"
	AuditActionRejectCar  AuditAction = "REJECT_CAR"
)

type AuditResourceType string

const AuditResourceCar AuditResourceType = "car"

// AuditLog records who did what to which listing during moderation.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}
