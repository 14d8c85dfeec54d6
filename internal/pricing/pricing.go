package pricing

import (
	"fmt"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
)

// Component reports a price in BDT and a human-readable description. The base
// component wraps a car; add-on decorators wrap previously built components.
type Component interface {
	Price() float64
	Description() string
}

type basicCar struct {
	car model.Car
}

// NewBasicCar is the undecorated price of a listing.
func NewBasicCar(car model.Car) Component {
	return basicCar{car: car}
}

func (b basicCar) Price() float64 {
	return b.car.Price
}

func (b basicCar) Description() string {
	return fmt.Sprintf("%d %s %s", b.car.Year, b.car.Make, b.car.Model)
}

type AddOn string

const (
	AddOnWarranty   AddOn = "warranty"
	AddOnDashcam    AddOn = "dashcam"
	AddOnSeatCovers AddOn = "seatcovers"
	AddOnTinting    AddOn = "tinting"
)

// Add-on costs are fixed constants in BDT. Conversion for display is the
// caller's job.
var addOnCosts = map[AddOn]float64{
	AddOnWarranty:   50000,
	AddOnDashcam:    15000,
	AddOnSeatCovers: 20000,
	AddOnTinting:    10000,
}

var addOnLabels = map[AddOn]string{
	AddOnWarranty:   "Extended Warranty",
	AddOnDashcam:    "Dash Cam",
	AddOnSeatCovers: "Seat Covers",
	AddOnTinting:    "Window Tinting",
}

func (a AddOn) Valid() bool {
	_, ok := addOnCosts[a]
	return ok
}

func Cost(a AddOn) float64 {
	return addOnCosts[a]
}

func Label(a AddOn) string {
	return addOnLabels[a]
}

// AddOns lists the closed add-on set.
func AddOns() []AddOn {
	return []AddOn{AddOnWarranty, AddOnDashcam, AddOnSeatCovers, AddOnTinting}
}

type addOnDecorator struct {
	wrapped Component
	addOn   AddOn
}

// WithAddOn wraps a component with one add-on. Each add-on is a constant
// addend, so the final price is independent of wrapping order.
func WithAddOn(c Component, a AddOn) Component {
	return addOnDecorator{wrapped: c, addOn: a}
}

func (d addOnDecorator) Price() float64 {
	return d.wrapped.Price() + addOnCosts[d.addOn]
}

func (d addOnDecorator) Description() string {
	return d.wrapped.Description() + " + " + addOnLabels[d.addOn]
}

// Apply decorates in the order the add-ons were requested.
func Apply(c Component, addOns ...AddOn) Component {
	for _, a := range addOns {
		c = WithAddOn(c, a)
	}
	return c
}
