package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentUsecase(tx *TxManagerMock, txnID string, now time.Time) *usecase.PaymentUsecase {
	return usecase.NewPaymentUsecase(tx, fixedIDGen{id: txnID}, fixedClock{now: now})
}

func acceptedOrder(id, buyerID, carID int64, total float64) model.Order {
	return model.Order{ID: id, BuyerID: buyerID, CarID: carID, Status: model.OrderStatusAccepted, TotalPrice: total}
}

func TestPaymentUsecase_Pay_InvalidMethod(t *testing.T) {
	uc := newPaymentUsecase(new(TxManagerMock), "txn-1", time.Now())

	_, err := uc.Pay(context.Background(), 1, 10, "paypal")
	assertErrContains(t, err, "invalid payment method")
}

func TestPaymentUsecase_Pay_OnlyBuyer(t *testing.T) {
	orders := new(OrderRepoMock)
	tx := new(TxManagerMock)
	tx.Repos = &TxReposStub{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(acceptedOrder(10, 1, 5, 500000), nil)

	uc := newPaymentUsecase(tx, "txn-1", time.Now())

	_, err := uc.Pay(context.Background(), 9, 10, "bkash")
	assertErrContains(t, err, "only the buyer")
}

func TestPaymentUsecase_Pay_AlreadyPaid(t *testing.T) {
	orders := new(OrderRepoMock)
	tx := new(TxManagerMock)
	tx.Repos = &TxReposStub{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	order := acceptedOrder(10, 1, 5, 500000)
	order.Status = model.OrderStatusPaid
	orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(order, nil)

	uc := newPaymentUsecase(tx, "txn-1", time.Now())

	_, err := uc.Pay(context.Background(), 1, 10, "bkash")
	assertErrContains(t, err, "already been paid")
}

func TestPaymentUsecase_Pay_RequiresAcceptedOrder(t *testing.T) {
	orders := new(OrderRepoMock)
	tx := new(TxManagerMock)
	tx.Repos = &TxReposStub{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	order := acceptedOrder(10, 1, 5, 500000)
	order.Status = model.OrderStatusPending
	orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(order, nil)

	uc := newPaymentUsecase(tx, "txn-1", time.Now())

	_, err := uc.Pay(context.Background(), 1, 10, "bkash")
	assertErrContains(t, err, "only accepted orders")
}

func TestPaymentUsecase_Pay_Success_SettlesInstantlyAndNotifiesBothParties(t *testing.T) {
	orders := new(OrderRepoMock)
	cars := new(CarRepoMock)
	payments := new(PaymentRepoMock)
	notifications := new(NotificationRepoMock)
	tx := new(TxManagerMock)
	tx.Repos = &TxReposStub{orders: orders, cars: cars, payments: payments, notifications: notifications}
	tx.On("WithinTx", mock.Anything).Return(nil)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(acceptedOrder(10, 1, 5, 565000), nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == 10 &&
			p.TransactionID == "txn-42" &&
			p.Amount == 565000 &&
			p.Method == model.PaymentMethodNagad &&
			p.Status == model.PaymentStatusSuccess
	})).Return(model.Payment{ID: 3, OrderID: 10, TransactionID: "txn-42", Amount: 565000, Method: model.PaymentMethodNagad, Status: model.PaymentStatusSuccess}, nil)
	orders.On("MarkPaid", mock.Anything, int64(10), model.PaymentMethodNagad, now).Return(nil)
	cars.On("FindByID", mock.Anything, int64(5)).Return(approvedCar(5, 2, 500000), nil)
	notifications.On("Create", mock.Anything, notificationFor(1, "Transaction ID: txn-42")).Return(nil)
	notifications.On("Create", mock.Anything, notificationFor(2, "received a payment")).Return(nil)

	uc := newPaymentUsecase(tx, "txn-42", now)

	out, err := uc.Pay(context.Background(), 1, 10, "nagad")
	assert.NoError(t, err)
	assert.Equal(t, "txn-42", out.TransactionID)
	assert.Equal(t, "SUCCESS", out.Status)
	assert.Equal(t, float64(565000), out.Amount)

	payments.AssertExpectations(t)
	orders.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestPaymentUsecase_Methods(t *testing.T) {
	uc := newPaymentUsecase(new(TxManagerMock), "txn-1", time.Now())
	assert.Equal(t, []string{"bkash", "nagad", "rocket", "card"}, uc.Methods())
}
