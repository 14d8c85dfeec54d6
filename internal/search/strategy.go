// Package search filters listings by one of several interchangeable criteria.
// Exactly one strategy is active per call; strategies do not compose. The
// approval filter is the caller's responsibility, not the strategy's.
package search

import (
	"strings"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

type Strategy interface {
	Matches(car model.Car) bool
}

// PriceRange matches price in [Min, Max] inclusive, in BDT.
type PriceRange struct {
	Min, Max float64
}

func (s PriceRange) Matches(car model.Car) bool {
	return car.Price >= s.Min && car.Price <= s.Max
}

// Brand matches the make by case-insensitive substring.
type Brand struct {
	Query string
}

func (s Brand) Matches(car model.Car) bool {
	return strings.Contains(strings.ToLower(car.Make), strings.ToLower(s.Query))
}

// ModelName matches the model by case-insensitive substring.
type ModelName struct {
	Query string
}

func (s ModelName) Matches(car model.Car) bool {
	return strings.Contains(strings.ToLower(car.Model), strings.ToLower(s.Query))
}

// MileageRange matches mileage in [Min, Max] inclusive.
type MileageRange struct {
	Min, Max int
}

func (s MileageRange) Matches(car model.Car) bool {
	return car.Mileage >= s.Min && car.Mileage <= s.Max
}

// Category matches the car type exactly, case-insensitively.
type Category struct {
	CarType string
}

func (s Category) Matches(car model.Car) bool {
	return strings.EqualFold(string(car.CarType), s.CarType)
}

// YearRange matches year in [Min, Max] inclusive.
type YearRange struct {
	Min, Max int
}

func (s YearRange) Matches(car model.Car) bool {
	return car.Year >= s.Min && car.Year <= s.Max
}

// Filter applies one strategy. A nil strategy returns the input unchanged.
func Filter(cars []model.Car, s Strategy) []model.Car {
	if s == nil {
		return cars
	}
	out := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		if s.Matches(car) {
			out = append(out, car)
		}
	}
	return out
}
