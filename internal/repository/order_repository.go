package repository

import (
	"context"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// FindByIDForUpdate row-locks the order. Only valid inside WithinTx.
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)

	// HasPending reports whether the buyer already has a pending request for
	// the car. Checked inside the same transaction as Create.
	HasPending(ctx context.Context, buyerID int64, carID int64) (bool, error)

	// ListPendingByCarExcept returns the competing pending orders cancelled by
	// the accept cascade.
	ListPendingByCarExcept(ctx context.Context, carID int64, exceptOrderID int64) ([]model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	MarkPaid(ctx context.Context, orderID int64, method model.PaymentMethod, paidAt time.Time) error

	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListByCarOwner(ctx context.Context, ownerID int64) ([]model.Order, error)

	CountAll(ctx context.Context) (int64, error)
}
