package repository

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	// FindByEmail returns found=false instead of an error for a miss.
	FindByEmail(ctx context.Context, email string) (model.User, bool, error)
	Update(ctx context.Context, user model.User) error
	// Delete cascades to the user's listings, orders and notifications.
	Delete(ctx context.Context, userID int64) error

	UpsertProfile(ctx context.Context, profile model.UserProfile) error
	FindProfileByUserID(ctx context.Context, userID int64) (model.UserProfile, error)

	CountAll(ctx context.Context) (int64, error)
}
