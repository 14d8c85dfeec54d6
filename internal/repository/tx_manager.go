package repository

import "context"

// TxRepos is the repository set bound to one transaction.
type TxRepos interface {
	Cars() CarRepository
	Orders() OrderRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Payments() PaymentRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from usecases. Multi-row
// effects (accept cascade, price-change fan-out, place-order check+insert)
// must run inside WithinTx.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
