package repository

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAllRead(ctx context.Context, userID int64) error
}
