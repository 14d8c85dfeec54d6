package usecase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/notify"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
)

// IDGenerator supplies payment transaction ids.
type IDGenerator interface {
	NewID() string
}

type PaymentUsecase struct {
	tx    repo.TransactionManager
	ids   IDGenerator
	clock Clock
}

func NewPaymentUsecase(tx repo.TransactionManager, ids IDGenerator, clock Clock) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, ids: ids, clock: clock}
}

type PaymentOutput struct {
	TransactionID string  `json:"transaction_id"`
	OrderID       int64   `json:"order_id"`
	Amount        float64 `json:"amount"` // BDT
	Method        string  `json:"method"`
	Status        string  `json:"status"`
}

// Pay settles an accepted order. The processor is mocked, so settlement is
// instant: a payment row is written, the order flips to PAID, and both parties
// are notified in the same transaction.
func (u *PaymentUsecase) Pay(ctx context.Context, buyerID int64, orderID int64, method string) (PaymentOutput, error) {
	if buyerID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m := model.PaymentMethod(method)
	if !m.Valid() {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	var out PaymentOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// Locked so a double pay on the same order serializes and the
		// second attempt sees the PAID status.
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.BuyerID != buyerID {
			return NewHTTPError(http.StatusForbidden, "only the buyer can pay for this order")
		}
		if order.Status == model.OrderStatusPaid {
			return NewHTTPError(http.StatusConflict, "this order has already been paid")
		}
		if order.Status != model.OrderStatusAccepted {
			return NewHTTPError(http.StatusConflict, "only accepted orders can be paid")
		}

		payment, err := r.Payments().Create(ctx, model.Payment{
			OrderID:       orderID,
			TransactionID: u.ids.NewID(),
			Amount:        order.TotalPrice,
			Method:        m,
			Status:        model.PaymentStatusSuccess,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().MarkPaid(ctx, orderID, m, u.clock.Now()); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		car, err := r.Cars().FindByID(ctx, order.CarID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		buyerSubject := notify.NewSubject()
		buyerSubject.Attach(notify.NewUserObserver(order.BuyerID, r.Notifications()))
		buyerMsg := fmt.Sprintf("Payment of ৳%.0f for %s was successful. Transaction ID: %s.",
			payment.Amount, car.Title(), payment.TransactionID)
		if err := buyerSubject.Notify(ctx, buyerMsg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		sellerSubject := notify.NewSubject()
		sellerSubject.Attach(notify.NewUserObserver(car.OwnerID, r.Notifications()))
		sellerMsg := fmt.Sprintf("You received a payment of ৳%.0f for your %s.", payment.Amount, car.Title())
		if err := sellerSubject.Notify(ctx, sellerMsg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PaymentOutput{
			TransactionID: payment.TransactionID,
			OrderID:       payment.OrderID,
			Amount:        payment.Amount,
			Method:        string(payment.Method),
			Status:        string(payment.Status),
		}
		return nil
	})
	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

// Methods lists the accepted payment methods for the checkout UI.
func (u *PaymentUsecase) Methods() []string {
	return []string{
		string(model.PaymentMethodBkash),
		string(model.PaymentMethodNagad),
		string(model.PaymentMethodRocket),
		string(model.PaymentMethodCard),
	}
}
