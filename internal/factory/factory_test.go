package factory_test

import (
	"context"
	"testing"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/factory"

	"github.com/stretchr/testify/assert"
)

type creatorStub struct {
	created *model.Car
}

func (s *creatorStub) Create(_ context.Context, car model.Car) (model.Car, error) {
	car.ID = 1
	s.created = &car
	return car, nil
}

func TestForCarType_AllCategories(t *testing.T) {
	spec := factory.CarSpec{Make: "Toyota", Model: "Corolla", Year: 2018, PriceBDT: 500000, Mileage: 42000, OwnerID: 7}

	for _, ct := range model.CarTypes() {
		f, err := factory.ForCarType(ct)
		assert.NoError(t, err)

		stub := &creatorStub{}
		car, err := f.CreateCar(context.Background(), stub, spec)
		assert.NoError(t, err)

		assert.Equal(t, ct, car.CarType)
		assert.Equal(t, "Toyota", car.Make)
		assert.Equal(t, 500000.0, car.Price)
		assert.Equal(t, int64(7), car.OwnerID)
		assert.Equal(t, model.CarStatusAvailable, car.Status)
		assert.Equal(t, model.ApprovalPending, car.ApprovalStatus)
	}
}

func TestForCarType_Unknown(t *testing.T) {
	_, err := factory.ForCarType(model.CarType("hatchback"))
	assert.Error(t, err)
}
