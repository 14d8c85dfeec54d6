package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/access"
	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/notify"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
)

type AdminUsecase struct {
	tx        repo.TransactionManager
	cars      repo.CarRepository
	users     repo.UserRepository
	orders    repo.OrderRepository
	payments  repo.PaymentRepository
	audits    repo.AuditLogRepository
	carAccess *access.CarAccess
	clock     Clock
}

func NewAdminUsecase(
	tx repo.TransactionManager,
	cars repo.CarRepository,
	users repo.UserRepository,
	orders repo.OrderRepository,
	payments repo.PaymentRepository,
	audits repo.AuditLogRepository,
	carAccess *access.CarAccess,
	clock Clock,
) *AdminUsecase {
	return &AdminUsecase{
		tx:        tx,
		cars:      cars,
		users:     users,
		orders:    orders,
		payments:  payments,
		audits:    audits,
		carAccess: carAccess,
		clock:     clock,
	}
}

type PendingCarOutput struct {
	ID                 int64     `json:"id"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	PriceBDT           float64   `json:"price_bdt"`
	Mileage            int       `json:"mileage"`
	CarType            string    `json:"car_type"`
	OwnerID            int64     `json:"owner_id"`
	Images             []string  `json:"images"`
	RegistrationDocURL string    `json:"registration_doc_url"`
	CreatedAt          time.Time `json:"created_at"`
}

// ListPending returns the moderation queue, oldest first.
func (u *AdminUsecase) ListPending(ctx context.Context, actor access.Actor) ([]PendingCarOutput, error) {
	if d := u.carAccess.CanApprove(actor); !d.Allowed {
		return nil, NewHTTPError(http.StatusForbidden, d.Reason)
	}
	cars, err := u.cars.ListByApproval(ctx, model.ApprovalPending)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	outs := make([]PendingCarOutput, 0, len(cars))
	for _, car := range cars {
		images := make([]string, 0, len(car.Images))
		for _, img := range car.Images {
			images = append(images, img.URL)
		}
		outs = append(outs, PendingCarOutput{
			ID:                 car.ID,
			Make:               car.Make,
			Model:              car.Model,
			Year:               car.Year,
			PriceBDT:           car.Price,
			Mileage:            car.Mileage,
			CarType:            string(car.CarType),
			OwnerID:            car.OwnerID,
			Images:             images,
			RegistrationDocURL: car.RegistrationDocURL,
			CreatedAt:          car.CreatedAt,
		})
	}
	return outs, nil
}

// Approve publishes a pending listing. The owner is notified and the decision
// is audit-logged atomically with the state change.
func (u *AdminUsecase) Approve(ctx context.Context, actor access.Actor, carID int64) error {
	if d := u.carAccess.CanApprove(actor); !d.Allowed {
		return NewHTTPError(http.StatusForbidden, d.Reason)
	}
	return u.moderate(ctx, actor, carID, model.ApprovalApproved, "")
}

// Reject declines a pending listing. The optional reason is appended to the
// owner's notification.
func (u *AdminUsecase) Reject(ctx context.Context, actor access.Actor, carID int64, reason string) error {
	if d := u.carAccess.CanReject(actor); !d.Allowed {
		return NewHTTPError(http.StatusForbidden, d.Reason)
	}
	return u.moderate(ctx, actor, carID, model.ApprovalRejected, strings.TrimSpace(reason))
}

func (u *AdminUsecase) moderate(ctx context.Context, actor access.Actor, carID int64, to model.ApprovalStatus, reason string) error {
	if carID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		car, err := r.Cars().FindByID(ctx, carID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if car.ApprovalStatus != model.ApprovalPending {
			return NewHTTPError(http.StatusConflict, "this listing has already been moderated")
		}

		if err := r.Cars().UpdateApproval(ctx, carID, to); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		var msg string
		if to == model.ApprovalApproved {
			msg = fmt.Sprintf("Your listing %s has been approved and is now live.", car.Title())
		} else {
			msg = fmt.Sprintf("Your listing %s has been rejected.", car.Title())
			if reason != "" {
				msg += " Reason: " + reason
			}
		}
		subject := notify.NewSubject()
		subject.Attach(notify.NewUserObserver(car.OwnerID, r.Notifications()))
		if err := subject.Notify(ctx, msg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		action := model.AuditActionApproveCar
		if to == model.ApprovalRejected {
			action = model.AuditActionRejectCar
		}
		entry := model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       action,
			ResourceType: model.AuditResourceCar,
			ResourceID:   carID,
			BeforeJSON:   approvalJSON(model.ApprovalPending),
			AfterJSON:    approvalJSON(to),
			CreatedAt:    u.clock.Now(),
		}
		if err := r.AuditLogs().Create(ctx, entry); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func approvalJSON(s model.ApprovalStatus) string {
	b, _ := json.Marshal(map[string]string{"approval_status": string(s)})
	return string(b)
}

type DashboardOutput struct {
	TotalUsers    int64              `json:"total_users"`
	TotalCars     int64              `json:"total_cars"`
	PendingCars   int64              `json:"pending_cars"`
	ApprovedCars  int64              `json:"approved_cars"`
	RejectedCars  int64              `json:"rejected_cars"`
	SoldCars      int64              `json:"sold_cars"`
	TotalOrders   int64              `json:"total_orders"`
	TotalPaidBDT  float64            `json:"total_paid_bdt"`
	RecentActions []AuditEntryOutput `json:"recent_actions"`
}

type AuditEntryOutput struct {
	ID          int64     `json:"id"`
	ActorUserID int64     `json:"actor_user_id"`
	Action      string    `json:"action"`
	ResourceID  int64     `json:"resource_id"`
	CreatedAt   time.Time `json:"created_at"`
}

const recentAuditLimit = 20

func (u *AdminUsecase) Dashboard(ctx context.Context, actor access.Actor) (DashboardOutput, error) {
	if d := u.carAccess.CanApprove(actor); !d.Allowed {
		return DashboardOutput{}, NewHTTPError(http.StatusForbidden, d.Reason)
	}

	var out DashboardOutput
	var err error
	if out.TotalUsers, err = u.users.CountAll(ctx); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.TotalCars, err = u.cars.CountAll(ctx); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.PendingCars, err = u.cars.CountByApproval(ctx, model.ApprovalPending); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.ApprovedCars, err = u.cars.CountByApproval(ctx, model.ApprovalApproved); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.RejectedCars, err = u.cars.CountByApproval(ctx, model.ApprovalRejected); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.SoldCars, err = u.cars.CountByStatus(ctx, model.CarStatusSold); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.TotalOrders, err = u.orders.CountAll(ctx); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.TotalPaidBDT, err = u.payments.SumPaid(ctx); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entries, err := u.audits.ListRecent(ctx, recentAuditLimit)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.RecentActions = make([]AuditEntryOutput, 0, len(entries))
	for _, e := range entries {
		out.RecentActions = append(out.RecentActions, AuditEntryOutput{
			ID:          e.ID,
			ActorUserID: e.ActorUserID,
			Action:      string(e.Action),
			ResourceID:  e.ResourceID,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out, nil
}
