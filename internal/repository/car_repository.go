package repository

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type CarRepository interface {
	// FindByID preloads images.
	FindByID(ctx context.Context, carID int64) (model.Car, error)
	// FindByIDForUpdate row-locks the car. Only valid inside WithinTx; the
	// sale and price transitions read through this so concurrent requests
	// serialize on the car row.
	FindByIDForUpdate(ctx context.Context, carID int64) (model.Car, error)
	OwnerOf(ctx context.Context, carID int64) (int64, error)
	Create(ctx context.Context, car model.Car) (model.Car, error)
	Update(ctx context.Context, car model.Car) error
	UpdatePrice(ctx context.Context, carID int64, priceBDT float64) error
	UpdateStatus(ctx context.Context, carID int64, status model.CarStatus) error
	UpdateApproval(ctx context.Context, carID int64, status model.ApprovalStatus) error
	Delete(ctx context.Context, carID int64) error

	ListApproved(ctx context.Context) ([]model.Car, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Car, error)
	ListByApproval(ctx context.Context, status model.ApprovalStatus) ([]model.Car, error)

	AddImages(ctx context.Context, carID int64, urls []string) error

	FollowerIDs(ctx context.Context, carID int64) ([]int64, error)
	IsFollower(ctx context.Context, carID int64, userID int64) (bool, error)
	AddFollower(ctx context.Context, carID int64, userID int64) error
	RemoveFollower(ctx context.Context, carID int64, userID int64) error

	// Dashboard counters.
	CountAll(ctx context.Context) (int64, error)
	CountByApproval(ctx context.Context, status model.ApprovalStatus) (int64, error)
	CountByStatus(ctx context.Context, status model.CarStatus) (int64, error)
}
