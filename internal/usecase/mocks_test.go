package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TxManagerMock runs the callback against a fixed repo set so unit tests can
// exercise transactional usecases without a database.
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposStub struct {
	cars          repo.CarRepository
	orders        repo.OrderRepository
	notifications repo.NotificationRepository
	users         repo.UserRepository
	payments      repo.PaymentRepository
	audits        repo.AuditLogRepository
}

func (r *TxReposStub) Cars() repo.CarRepository                   { return r.cars }
func (r *TxReposStub) Orders() repo.OrderRepository               { return r.orders }
func (r *TxReposStub) Notifications() repo.NotificationRepository { return r.notifications }
func (r *TxReposStub) Users() repo.UserRepository                 { return r.users }
func (r *TxReposStub) Payments() repo.PaymentRepository           { return r.payments }
func (r *TxReposStub) AuditLogs() repo.AuditLogRepository         { return r.audits }

type CarRepoMock struct{ mock.Mock }

func (m *CarRepoMock) FindByID(ctx context.Context, carID int64) (model.Car, error) {
	args := m.Called(ctx, carID)
	c, _ := args.Get(0).(model.Car)
	return c, args.Error(1)
}

func (m *CarRepoMock) FindByIDForUpdate(ctx context.Context, carID int64) (model.Car, error) {
	args := m.Called(ctx, carID)
	c, _ := args.Get(0).(model.Car)
	return c, args.Error(1)
}

func (m *CarRepoMock) OwnerOf(ctx context.Context, carID int64) (int64, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CarRepoMock) Create(ctx context.Context, car model.Car) (model.Car, error) {
	args := m.Called(ctx, car)
	c, _ := args.Get(0).(model.Car)
	return c, args.Error(1)
}

func (m *CarRepoMock) Update(ctx context.Context, car model.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *CarRepoMock) UpdatePrice(ctx context.Context, carID int64, priceBDT float64) error {
	args := m.Called(ctx, carID, priceBDT)
	return args.Error(0)
}

func (m *CarRepoMock) UpdateStatus(ctx context.Context, carID int64, status model.CarStatus) error {
	args := m.Called(ctx, carID, status)
	return args.Error(0)
}

func (m *CarRepoMock) UpdateApproval(ctx context.Context, carID int64, status model.ApprovalStatus) error {
	args := m.Called(ctx, carID, status)
	return args.Error(0)
}

func (m *CarRepoMock) Delete(ctx context.Context, carID int64) error {
	args := m.Called(ctx, carID)
	return args.Error(0)
}

func (m *CarRepoMock) ListApproved(ctx context.Context) ([]model.Car, error) {
	args := m.Called(ctx)
	cars, _ := args.Get(0).([]model.Car)
	return cars, args.Error(1)
}

func (m *CarRepoMock) ListByOwner(ctx context.Context, ownerID int64) ([]model.Car, error) {
	args := m.Called(ctx, ownerID)
	cars, _ := args.Get(0).([]model.Car)
	return cars, args.Error(1)
}

func (m *CarRepoMock) ListByApproval(ctx context.Context, status model.ApprovalStatus) ([]model.Car, error) {
	args := m.Called(ctx, status)
	cars, _ := args.Get(0).([]model.Car)
	return cars, args.Error(1)
}

func (m *CarRepoMock) AddImages(ctx context.Context, carID int64, urls []string) error {
	args := m.Called(ctx, carID, urls)
	return args.Error(0)
}

func (m *CarRepoMock) FollowerIDs(ctx context.Context, carID int64) ([]int64, error) {
	args := m.Called(ctx, carID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *CarRepoMock) IsFollower(ctx context.Context, carID int64, userID int64) (bool, error) {
	args := m.Called(ctx, carID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *CarRepoMock) AddFollower(ctx context.Context, carID int64, userID int64) error {
	args := m.Called(ctx, carID, userID)
	return args.Error(0)
}

func (m *CarRepoMock) RemoveFollower(ctx context.Context, carID int64, userID int64) error {
	args := m.Called(ctx, carID, userID)
	return args.Error(0)
}

func (m *CarRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CarRepoMock) CountByApproval(ctx context.Context, status model.ApprovalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CarRepoMock) CountByStatus(ctx context.Context, status model.CarStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) HasPending(ctx context.Context, buyerID int64, carID int64) (bool, error) {
	args := m.Called(ctx, buyerID, carID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) ListPendingByCarExcept(ctx context.Context, carID int64, exceptOrderID int64) ([]model.Order, error) {
	args := m.Called(ctx, carID, exceptOrderID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID int64, method model.PaymentMethod, paidAt time.Time) error {
	args := m.Called(ctx, orderID, method, paidAt)
	return args.Error(0)
}

func (m *OrderRepoMock) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	args := m.Called(ctx, buyerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByCarOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	args := m.Called(ctx, ownerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type NotificationRepoMock struct{ mock.Mock }

func (m *NotificationRepoMock) Create(ctx context.Context, n model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepoMock) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	ns, _ := args.Get(0).([]model.Notification)
	return ns, args.Error(1)
}

func (m *NotificationRepoMock) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepoMock) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, bool, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Bool(1), args.Error(2)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepoMock) UpsertProfile(ctx context.Context, profile model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *UserRepoMock) FindProfileByUserID(ctx context.Context, userID int64) (model.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(model.UserProfile)
	return p, args.Error(1)
}

func (m *UserRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, payment model.Payment) (model.Payment, error) {
	args := m.Called(ctx, payment)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) SumPaid(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, entry model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditLogRepoMock) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]model.AuditLog)
	return entries, args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() string { return g.id }

// assertErrContains checks the message without depending on the HTTPError
// internals.
func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
