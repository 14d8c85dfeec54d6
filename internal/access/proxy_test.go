package access_test

import (
	"context"
	"testing"

	"github.com/SafatUddin/CAR-Hub/internal/access"
	"github.com/SafatUddin/CAR-Hub/internal/repository"

	"github.com/stretchr/testify/assert"
)

type ownershipStub struct {
	owners map[int64]int64
}

func (s ownershipStub) OwnerOf(_ context.Context, carID int64) (int64, error) {
	id, ok := s.owners[carID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

func newCarAccess() *access.CarAccess {
	return access.NewCarAccess(ownershipStub{owners: map[int64]int64{10: 1}})
}

var (
	admin     = access.Actor{ID: 99, IsAdmin: true, IsAuthenticated: true}
	owner     = access.Actor{ID: 1, IsAuthenticated: true}
	stranger  = access.Actor{ID: 2, IsAuthenticated: true}
	anonymous = access.Actor{}
)

func TestCanCreate(t *testing.T) {
	p := newCarAccess()

	assert.True(t, p.CanCreate(owner).Allowed)

	d := p.CanCreate(anonymous)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)

	d = p.CanCreate(admin)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
}

func TestCanDelete(t *testing.T) {
	p := newCarAccess()
	ctx := context.Background()

	d, err := p.CanDelete(ctx, admin, 10)
	assert.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = p.CanDelete(ctx, owner, 10)
	assert.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = p.CanDelete(ctx, stranger, 10)
	assert.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)

	_, err = p.CanDelete(ctx, admin, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCanApproveReject_AdminOnly(t *testing.T) {
	p := newCarAccess()

	assert.True(t, p.CanApprove(admin).Allowed)
	assert.True(t, p.CanReject(admin).Allowed)
	assert.False(t, p.CanApprove(owner).Allowed)
	assert.False(t, p.CanReject(owner).Allowed)
	assert.False(t, p.CanApprove(anonymous).Allowed)
}
