package repository

import (
	"context"

	repo "github.com/SafatUddin/CAR-Hub/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	cars          repo.CarRepository
	orders        repo.OrderRepository
	notifications repo.NotificationRepository
	users         repo.UserRepository
	payments      repo.PaymentRepository
	auditLogs     repo.AuditLogRepository
}

func (r *txReposGorm) Cars() repo.CarRepository                   { return r.cars }
func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) Notifications() repo.NotificationRepository { return r.notifications }
func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) Payments() repo.PaymentRepository           { return r.payments }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository         { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repos are rebuilt on the tx handle
		r := &txReposGorm{
			cars:          NewCarGormRepository(tx),
			orders:        NewOrderGormRepository(tx),
			notifications: NewNotificationGormRepository(tx),
			users:         NewUserGormRepository(tx),
			payments:      NewPaymentGormRepository(tx),
			auditLogs:     NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
