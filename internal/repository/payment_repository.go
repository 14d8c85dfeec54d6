package repository

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment model.Payment) (model.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	// SumPaid totals settled payment amounts for the dashboard.
	SumPaid(ctx context.Context) (float64, error)
}
