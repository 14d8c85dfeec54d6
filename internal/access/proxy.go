// Package access is the authorization gate for listing mutations. Decisions
// are re-evaluated on every call: ownership and role can change between calls,
// so nothing is cached.
package access

import "context"

// Actor is the opaque principal supplied by the identity layer.
type Actor struct {
	ID              int64
	IsAdmin         bool
	IsAuthenticated bool
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CarOwnership resolves the current owner of a listing.
type CarOwnership interface {
	OwnerOf(ctx context.Context, carID int64) (int64, error)
}

// CarAccess proxies listing mutations behind role/ownership checks.
type CarAccess struct {
	cars CarOwnership
}

func NewCarAccess(cars CarOwnership) *CarAccess {
	return &CarAccess{cars: cars}
}

// CanCreate: admins moderate, they do not list vehicles.
func (p *CarAccess) CanCreate(actor Actor) Decision {
	if !actor.IsAuthenticated {
		return deny("Permission denied: you must be logged in to post a car.")
	}
	if actor.IsAdmin {
		return deny("Permission denied: administrators cannot post listings.")
	}
	return allow()
}

// CanDelete: the owner or an administrator may delete a listing. Ownership is
// read fresh from the repository; the error surfaces ErrNotFound as-is.
func (p *CarAccess) CanDelete(ctx context.Context, actor Actor, carID int64) (Decision, error) {
	ownerID, err := p.cars.OwnerOf(ctx, carID)
	if err != nil {
		return Decision{}, err
	}
	if actor.IsAdmin {
		return allow(), nil
	}
	if actor.IsAuthenticated && actor.ID == ownerID {
		return allow(), nil
	}
	return deny("Permission denied: only admins or the owner can delete a listing."), nil
}

func (p *CarAccess) CanApprove(actor Actor) Decision {
	if !actor.IsAdmin {
		return deny("Permission denied: only admins can approve listings.")
	}
	return allow()
}

func (p *CarAccess) CanReject(actor Actor) Decision {
	if !actor.IsAdmin {
		return deny("Permission denied: only admins can reject listings.")
	}
	return allow()
}
