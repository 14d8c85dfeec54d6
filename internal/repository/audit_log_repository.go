package repository

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry model.AuditLog) error
	// ListRecent returns the newest moderation actions for the dashboard.
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}
