// Package notify fans events out to interested users. A Subject is built fresh
// by the operation that triggers the event; observer sets are never persisted
// on long-lived objects.
package notify

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

// Observer receives one delivered message.
type Observer interface {
	Update(ctx context.Context, message string) error
}

// NotificationWriter persists a notification row for a user.
type NotificationWriter interface {
	Create(ctx context.Context, n model.Notification) error
}

// UserObserver writes one Notification record per delivered message.
// It is a comparable value so Subject.Attach can deduplicate registrations.
type UserObserver struct {
	UserID        int64
	notifications NotificationWriter
}

func NewUserObserver(userID int64, w NotificationWriter) UserObserver {
	return UserObserver{UserID: userID, notifications: w}
}

func (o UserObserver) Update(ctx context.Context, message string) error {
	return o.notifications.Create(ctx, model.Notification{
		UserID:  o.UserID,
		Message: message,
	})
}

// Subject holds a registered observer set and delivers messages synchronously
// in registration order.
type Subject struct {
	observers []Observer
}

func NewSubject() *Subject {
	return &Subject{}
}

// Attach is idempotent: an already-registered observer is not added twice.
func (s *Subject) Attach(o Observer) {
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// Detach is a no-op when the observer was never attached.
func (s *Subject) Detach(o Observer) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers to every attached observer in registration order. The first
// delivery error aborts the fan-out so a surrounding transaction can roll the
// whole event back.
func (s *Subject) Notify(ctx context.Context, message string) error {
	for _, o := range s.observers {
		if err := o.Update(ctx, message); err != nil {
			return err
		}
	}
	return nil
}
