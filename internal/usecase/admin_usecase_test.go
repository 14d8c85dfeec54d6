package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/access"
	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type adminMocks struct {
	tx            *TxManagerMock
	cars          *CarRepoMock
	users         *UserRepoMock
	orders        *OrderRepoMock
	payments      *PaymentRepoMock
	audits        *AuditLogRepoMock
	notifications *NotificationRepoMock
}

func newAdminUsecase(now time.Time) (*usecase.AdminUsecase, adminMocks) {
	m := adminMocks{
		tx:            new(TxManagerMock),
		cars:          new(CarRepoMock),
		users:         new(UserRepoMock),
		orders:        new(OrderRepoMock),
		payments:      new(PaymentRepoMock),
		audits:        new(AuditLogRepoMock),
		notifications: new(NotificationRepoMock),
	}
	m.tx.Repos = &TxReposStub{
		cars:          m.cars,
		orders:        m.orders,
		notifications: m.notifications,
		users:         m.users,
		payments:      m.payments,
		audits:        m.audits,
	}
	m.tx.On("WithinTx", mock.Anything).Return(nil)

	uc := usecase.NewAdminUsecase(
		m.tx, m.cars, m.users, m.orders, m.payments, m.audits,
		access.NewCarAccess(m.cars), fixedClock{now: now},
	)
	return uc, m
}

func TestAdminUsecase_ListPending_NonAdminForbidden(t *testing.T) {
	uc, _ := newAdminUsecase(time.Now())

	_, err := uc.ListPending(context.Background(), buyerActor(1))
	assertErrContains(t, err, "only admins")
}

func TestAdminUsecase_Approve_NotifiesOwnerAndWritesAudit(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	uc, m := newAdminUsecase(now)

	car := approvedCar(5, 2, 500000)
	car.ApprovalStatus = model.ApprovalPending
	m.cars.On("FindByID", mock.Anything, int64(5)).Return(car, nil)
	m.cars.On("UpdateApproval", mock.Anything, int64(5), model.ApprovalApproved).Return(nil)
	m.notifications.On("Create", mock.Anything, notificationFor(2, "has been approved and is now live")).Return(nil)
	m.audits.On("Create", mock.Anything, mock.MatchedBy(func(e model.AuditLog) bool {
		return e.ActorUserID == 99 &&
			e.Action == model.AuditActionApproveCar &&
			e.ResourceType == model.AuditResourceCar &&
			e.ResourceID == 5 &&
			e.CreatedAt.Equal(now)
	})).Return(nil)

	err := uc.Approve(context.Background(), adminActor(99), 5)
	assert.NoError(t, err)

	m.cars.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
	m.audits.AssertExpectations(t)
}

func TestAdminUsecase_Reject_ReasonAppendedToNotification(t *testing.T) {
	uc, m := newAdminUsecase(time.Now())

	car := approvedCar(5, 2, 500000)
	car.ApprovalStatus = model.ApprovalPending
	m.cars.On("FindByID", mock.Anything, int64(5)).Return(car, nil)
	m.cars.On("UpdateApproval", mock.Anything, int64(5), model.ApprovalRejected).Return(nil)
	m.notifications.On("Create", mock.Anything, notificationFor(2, "Reason: registration document unreadable")).Return(nil)
	m.audits.On("Create", mock.Anything, mock.MatchedBy(func(e model.AuditLog) bool {
		return e.Action == model.AuditActionRejectCar
	})).Return(nil)

	err := uc.Reject(context.Background(), adminActor(99), 5, "registration document unreadable")
	assert.NoError(t, err)

	m.notifications.AssertExpectations(t)
}

func TestAdminUsecase_Moderate_AlreadyModerated(t *testing.T) {
	uc, m := newAdminUsecase(time.Now())

	m.cars.On("FindByID", mock.Anything, int64(5)).Return(approvedCar(5, 2, 500000), nil)

	err := uc.Approve(context.Background(), adminActor(99), 5)
	assertErrContains(t, err, "already been moderated")

	m.cars.AssertNotCalled(t, "UpdateApproval", mock.Anything, mock.Anything, mock.Anything)
	m.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUsecase_Approve_NonAdminForbidden(t *testing.T) {
	uc, m := newAdminUsecase(time.Now())

	err := uc.Approve(context.Background(), buyerActor(1), 5)
	assertErrContains(t, err, "only admins")
	m.cars.AssertNotCalled(t, "UpdateApproval", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUsecase_Dashboard_AggregatesCounters(t *testing.T) {
	uc, m := newAdminUsecase(time.Now())

	m.users.On("CountAll", mock.Anything).Return(int64(40), nil)
	m.cars.On("CountAll", mock.Anything).Return(int64(25), nil)
	m.cars.On("CountByApproval", mock.Anything, model.ApprovalPending).Return(int64(3), nil)
	m.cars.On("CountByApproval", mock.Anything, model.ApprovalApproved).Return(int64(20), nil)
	m.cars.On("CountByApproval", mock.Anything, model.ApprovalRejected).Return(int64(2), nil)
	m.cars.On("CountByStatus", mock.Anything, model.CarStatusSold).Return(int64(6), nil)
	m.orders.On("CountAll", mock.Anything).Return(int64(12), nil)
	m.payments.On("SumPaid", mock.Anything).Return(float64(3200000), nil)
	m.audits.On("ListRecent", mock.Anything, 20).Return([]model.AuditLog{
		{ID: 1, ActorUserID: 99, Action: model.AuditActionApproveCar, ResourceID: 5},
	}, nil)

	out, err := uc.Dashboard(context.Background(), adminActor(99))
	assert.NoError(t, err)
	assert.Equal(t, int64(40), out.TotalUsers)
	assert.Equal(t, int64(3), out.PendingCars)
	assert.Equal(t, int64(6), out.SoldCars)
	assert.Equal(t, float64(3200000), out.TotalPaidBDT)
	assert.Len(t, out.RecentActions, 1)
	assert.Equal(t, "APPROVE_CAR", out.RecentActions[0].Action)
}
