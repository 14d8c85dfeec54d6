package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/notify"
	"github.com/SafatUddin/CAR-Hub/internal/pricing"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	cars   repo.CarRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, cars repo.CarRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, cars: cars}
}

type PlaceOrderInput struct {
	CarID  int64
	AddOns []string
}

type OrderOutput struct {
	ID            int64      `json:"id"`
	CarID         int64      `json:"car_id"`
	BuyerID       int64      `json:"buyer_id"`
	Status        string     `json:"status"`
	AddOns        []string   `json:"addons"`
	TotalPrice    float64    `json:"total_price"` // BDT
	PaymentMethod string     `json:"payment_method,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Place files a buy request. The availability and duplicate checks run in the
// same transaction as the insert so two concurrent requests cannot both pass.
func (u *OrderUsecase) Place(ctx context.Context, buyerID int64, in PlaceOrderInput) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.CarID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid car id")
	}
	selected, err := parseAddOns(in.AddOns)
	if err != nil {
		return OrderOutput{}, err
	}

	var placed model.Order
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// Lock the car row so a concurrent accept or duplicate place
		// serializes against this request.
		car, err := r.Cars().FindByIDForUpdate(ctx, in.CarID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if car.ApprovalStatus != model.ApprovalApproved {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if car.Status == model.CarStatusSold {
			return NewHTTPError(http.StatusConflict, "this car has already been sold")
		}
		if car.OwnerID == buyerID {
			return NewHTTPError(http.StatusConflict, "you cannot buy your own car")
		}

		pending, err := r.Orders().HasPending(ctx, buyerID, in.CarID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if pending {
			return NewHTTPError(http.StatusConflict, "you already have a pending request for this car")
		}

		total := pricing.Apply(pricing.NewBasicCar(car), selected...).Price()
		order := model.Order{
			BuyerID:    buyerID,
			CarID:      in.CarID,
			Status:     model.OrderStatusPending,
			TotalPrice: total,
		}
		for _, a := range selected {
			switch a {
			case pricing.AddOnWarranty:
				order.HasWarranty = true
			case pricing.AddOnDashcam:
				order.HasDashcam = true
			case pricing.AddOnSeatCovers:
				order.HasSeatCovers = true
			case pricing.AddOnTinting:
				order.HasTinting = true
			}
		}
		placed, err = r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		buyer, err := r.Users().FindByID(ctx, buyerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subject := notify.NewSubject()
		subject.Attach(notify.NewUserObserver(car.OwnerID, r.Notifications()))
		msg := fmt.Sprintf("New Buy Request: %s wants to buy your %s.", buyer.Name, car.Title())
		if err := subject.Notify(ctx, msg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(placed), nil
}

// Accept marks one pending request accepted. Every other pending request for
// the same car is cancelled and its buyer notified, and the car is marked
// sold, all atomically.
func (u *OrderUsecase) Accept(ctx context.Context, ownerID int64, orderID int64) error {
	if ownerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, car, err := u.loadOwnedOrder(ctx, r, ownerID, orderID)
		if err != nil {
			return err
		}
		if car.Status == model.CarStatusSold {
			return NewHTTPError(http.StatusConflict, "this car has already been sold")
		}
		if order.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusConflict, "only pending requests can be accepted")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusAccepted); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Cars().UpdateStatus(ctx, car.ID, model.CarStatusSold); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		competing, err := r.Orders().ListPendingByCarExcept(ctx, car.ID, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		cancelMsg := fmt.Sprintf("Your buy request for %s was cancelled because the car was sold to another buyer.", car.Title())
		for _, other := range competing {
			if err := r.Orders().UpdateStatus(ctx, other.ID, model.OrderStatusCancelled); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			subject := notify.NewSubject()
			subject.Attach(notify.NewUserObserver(other.BuyerID, r.Notifications()))
			if err := subject.Notify(ctx, cancelMsg); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		subject := notify.NewSubject()
		subject.Attach(notify.NewUserObserver(order.BuyerID, r.Notifications()))
		acceptMsg := fmt.Sprintf("Congratulations! Your buy request for %s has been accepted!", car.Title())
		if err := subject.Notify(ctx, acceptMsg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Reject declines a pending request. The car stays available.
func (u *OrderUsecase) Reject(ctx context.Context, ownerID int64, orderID int64) error {
	if ownerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, car, err := u.loadOwnedOrder(ctx, r, ownerID, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusConflict, "only pending requests can be rejected")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusRejected); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subject := notify.NewSubject()
		subject.Attach(notify.NewUserObserver(order.BuyerID, r.Notifications()))
		msg := fmt.Sprintf("Your buy request for %s has been rejected.", car.Title())
		if err := subject.Notify(ctx, msg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// loadOwnedOrder row-locks the order and its car so concurrent accepts on the
// same car see each other's status writes.
func (u *OrderUsecase) loadOwnedOrder(ctx context.Context, r repo.TxRepos, ownerID int64, orderID int64) (model.Order, model.Car, error) {
	order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, model.Car{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, model.Car{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	car, err := r.Cars().FindByIDForUpdate(ctx, order.CarID)
	if err != nil {
		return model.Order{}, model.Car{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if car.OwnerID != ownerID {
		return model.Order{}, model.Car{}, NewHTTPError(http.StatusForbidden, "you are not the seller of this car")
	}
	return order, car, nil
}

// ListMine returns the actor's requests as a buyer.
func (u *OrderUsecase) ListMine(ctx context.Context, buyerID int64) ([]OrderOutput, error) {
	if buyerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orders, err := u.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutputs(orders), nil
}

// ListIncoming returns requests placed against the actor's listings.
func (u *OrderUsecase) ListIncoming(ctx context.Context, ownerID int64) ([]OrderOutput, error) {
	if ownerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orders, err := u.orders.ListByCarOwner(ctx, ownerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutputs(orders), nil
}

func toOrderOutput(o model.Order) OrderOutput {
	addOns := make([]string, 0, 4)
	if o.HasWarranty {
		addOns = append(addOns, string(pricing.AddOnWarranty))
	}
	if o.HasDashcam {
		addOns = append(addOns, string(pricing.AddOnDashcam))
	}
	if o.HasSeatCovers {
		addOns = append(addOns, string(pricing.AddOnSeatCovers))
	}
	if o.HasTinting {
		addOns = append(addOns, string(pricing.AddOnTinting))
	}
	return OrderOutput{
		ID:            o.ID,
		CarID:         o.CarID,
		BuyerID:       o.BuyerID,
		Status:        string(o.Status),
		AddOns:        addOns,
		TotalPrice:    o.TotalPrice,
		PaymentMethod: string(o.PaymentMethod),
		PaidAt:        o.PaymentCompletedAt,
		CreatedAt:     o.CreatedAt,
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs
}
