// Package factory constructs new listings. Every category shares the same
// required fields; only the stored category tag differs. New listings start
// pending approval and available for sale.
package factory

import (
	"context"
	"fmt"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

// CarCreator persists new listing records.
type CarCreator interface {
	Create(ctx context.Context, car model.Car) (model.Car, error)
}

// CarSpec carries the fields required for every category.
type CarSpec struct {
	Make     string
	Model    string
	Year     int
	PriceBDT float64
	Mileage  int
	OwnerID  int64
}

type CarFactory interface {
	CreateCar(ctx context.Context, cars CarCreator, spec CarSpec) (model.Car, error)
}

type sedanFactory struct{}
type suvFactory struct{}
type truckFactory struct{}
type coupeFactory struct{}

func (sedanFactory) CreateCar(ctx context.Context, cars CarCreator, spec CarSpec) (model.Car, error) {
	return createWithType(ctx, cars, spec, model.CarTypeSedan)
}

func (suvFactory) CreateCar(ctx context.Context, cars CarCreator, spec CarSpec) (model.Car, error) {
	return createWithType(ctx, cars, spec, model.CarTypeSUV)
}

func (truckFactory) CreateCar(ctx context.Context, cars CarCreator, spec CarSpec) (model.Car, error) {
	return createWithType(ctx, cars, spec, model.CarTypeTruck)
}

func (coupeFactory) CreateCar(ctx context.Context, cars CarCreator, spec CarSpec) (model.Car, error) {
	return createWithType(ctx, cars, spec, model.CarTypeCoupe)
}

func createWithType(ctx context.Context, cars CarCreator, spec CarSpec, t model.CarType) (model.Car, error) {
	return cars.Create(ctx, model.Car{
		Make:           spec.Make,
		Model:          spec.Model,
		Year:           spec.Year,
		Price:          spec.PriceBDT,
		Mileage:        spec.Mileage,
		CarType:        t,
		OwnerID:        spec.OwnerID,
		Status:         model.CarStatusAvailable,
		ApprovalStatus: model.ApprovalPending,
	})
}

// ForCarType picks the creator for a category tag. Callers are expected to
// pre-validate against model.CarTypes; an unknown tag is still an error here.
func ForCarType(t model.CarType) (CarFactory, error) {
	switch t {
	case model.CarTypeSedan:
		return sedanFactory{}, nil
	case model.CarTypeSUV:
		return suvFactory{}, nil
	case model.CarTypeTruck:
		return truckFactory{}, nil
	case model.CarTypeCoupe:
		return coupeFactory{}, nil
	default:
		return nil, fmt.Errorf("unknown car type %q", t)
	}
}
