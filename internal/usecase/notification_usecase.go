package usecase

import (
	"context"
	"net/http"
	"time"

	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
)

type NotificationUsecase struct {
	notifications repo.NotificationRepository
}

func NewNotificationUsecase(notifications repo.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications}
}

type NotificationOutput struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *NotificationUsecase) List(ctx context.Context, userID int64) ([]NotificationOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	notifications, err := u.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	outs := make([]NotificationOutput, 0, len(notifications))
	for _, n := range notifications {
		outs = append(outs, NotificationOutput{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return outs, nil
}

func (u *NotificationUsecase) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	count, err := u.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return count, nil
}

func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.notifications.MarkAllRead(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
