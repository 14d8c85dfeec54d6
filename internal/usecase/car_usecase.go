package usecase

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/access"
	"github.com/SafatUddin/CAR-Hub/internal/currency"
	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/factory"
	"github.com/SafatUddin/CAR-Hub/internal/notify"
	"github.com/SafatUddin/CAR-Hub/internal/pricing"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
	"github.com/SafatUddin/CAR-Hub/internal/search"
)

const minListingYear = 1940

type CarUsecase struct {
	tx        repo.TransactionManager
	cars      repo.CarRepository
	carAccess *access.CarAccess
	converter currency.Converter
}

func NewCarUsecase(
	tx repo.TransactionManager,
	cars repo.CarRepository,
	carAccess *access.CarAccess,
	converter currency.Converter,
) *CarUsecase {
	return &CarUsecase{tx: tx, cars: cars, carAccess: carAccess, converter: converter}
}

type CarOutput struct {
	ID              int64    `json:"id"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Mileage         int      `json:"mileage"`
	CarType         string   `json:"car_type"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	ApprovalStatus  string   `json:"approval_status"`
	OwnerID         int64    `json:"owner_id"`
	ContactEmail    string   `json:"contact_email"`
	ContactWhatsApp string   `json:"contact_whatsapp"`
	Images          []string `json:"images"`

	PriceBDT       float64   `json:"price_bdt"`
	DisplayPrice   float64   `json:"display_price"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currency_symbol"`
	CreatedAt      time.Time `json:"created_at"`
}

// SearchInput selects at most one strategy. Numeric bounds arrive raw; an
// unparsable bound skips the search rather than failing it.
type SearchInput struct {
	SearchType string // "", "price", "brand", "model", "mileage", "type", "year"
	Query      string
	MinPrice   string
	MaxPrice   string
	MinMileage string
	MaxMileage string
	MinYear    string
	MaxYear    string
	Currency   string
}

type CarListOutput struct {
	Cars     []CarOutput `json:"cars"`
	Currency string      `json:"currency"`
}

// Browse lists approved cars, optionally narrowed by one search strategy.
// The approval filter is applied here, never inside a strategy.
func (u *CarUsecase) Browse(ctx context.Context, in SearchInput) (CarListOutput, error) {
	cars, err := u.cars.ListApproved(ctx)
	if err != nil {
		return CarListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cars = search.Filter(cars, u.buildStrategy(in))

	code := displayCurrency(in.Currency)
	outs := make([]CarOutput, 0, len(cars))
	for _, car := range cars {
		outs = append(outs, u.toCarOutput(car, code))
	}

	return CarListOutput{Cars: outs, Currency: code}, nil
}

// buildStrategy returns nil (no filtering) for malformed numeric input or an
// unknown search type.
func (u *CarUsecase) buildStrategy(in SearchInput) search.Strategy {
	switch in.SearchType {
	case "price":
		min, err1 := strconv.ParseFloat(in.MinPrice, 64)
		max, err2 := strconv.ParseFloat(in.MaxPrice, 64)
		if err1 != nil || err2 != nil {
			return nil
		}
		// Bounds are entered in the display currency; stored prices are BDT.
		code := displayCurrency(in.Currency)
		return search.PriceRange{
			Min: u.converter.ToBDT(min, code),
			Max: u.converter.ToBDT(max, code),
		}
	case "brand":
		if strings.TrimSpace(in.Query) == "" {
			return nil
		}
		return search.Brand{Query: in.Query}
	case "model":
		if strings.TrimSpace(in.Query) == "" {
			return nil
		}
		return search.ModelName{Query: in.Query}
	case "mileage":
		min, err1 := strconv.Atoi(in.MinMileage)
		max, err2 := strconv.Atoi(in.MaxMileage)
		if err1 != nil || err2 != nil {
			return nil
		}
		return search.MileageRange{Min: min, Max: max}
	case "type":
		if strings.TrimSpace(in.Query) == "" {
			return nil
		}
		return search.Category{CarType: in.Query}
	case "year":
		min, err1 := strconv.Atoi(in.MinYear)
		max, err2 := strconv.Atoi(in.MaxYear)
		if err1 != nil || err2 != nil {
			return nil
		}
		return search.YearRange{Min: min, Max: max}
	}
	return nil
}

type CarDetailOutput struct {
	Car CarOutput `json:"car"`

	// Decorated with the requested add-ons.
	FinalPriceBDT float64 `json:"final_price_bdt"`
	DisplayPrice  float64 `json:"display_price"`
	Description   string  `json:"description"`

	// Add-on costs converted to the display currency.
	AddOnPrices map[string]float64 `json:"addon_prices"`
}

// Detail is the decorated read path. Non-approved listings are visible only to
// their owner and admins; everyone else gets a 404.
func (u *CarUsecase) Detail(ctx context.Context, viewer access.Actor, carID int64, addOns []string, currencyCode string) (CarDetailOutput, error) {
	if carID <= 0 {
		return CarDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	car, err := u.cars.FindByID(ctx, carID)
	if err == repo.ErrNotFound {
		return CarDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CarDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if car.ApprovalStatus != model.ApprovalApproved && !viewer.IsAdmin && viewer.ID != car.OwnerID {
		return CarDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	selected, err := parseAddOns(addOns)
	if err != nil {
		return CarDetailOutput{}, err
	}

	component := pricing.Apply(pricing.NewBasicCar(car), selected...)
	finalBDT := component.Price()

	code := displayCurrency(currencyCode)
	addOnPrices := make(map[string]float64, len(pricing.AddOns()))
	for _, a := range pricing.AddOns() {
		addOnPrices[string(a)] = u.converter.FromBDT(pricing.Cost(a), code)
	}

	return CarDetailOutput{
		Car:           u.toCarOutput(car, code),
		FinalPriceBDT: finalBDT,
		DisplayPrice:  u.converter.FromBDT(finalBDT, code),
		Description:   component.Description(),
		AddOnPrices:   addOnPrices,
	}, nil
}

type CreateCarInput struct {
	Make               string
	Model              string
	Year               int
	Price              float64
	Currency           string // currency the price was entered in
	Mileage            int
	CarType            string
	Description        string
	ContactEmail       string
	ContactWhatsApp    string
	ImageURLs          []string
	RegistrationDocURL string
}

func (u *CarUsecase) Create(ctx context.Context, actor access.Actor, in CreateCarInput) (CarOutput, error) {
	if d := u.carAccess.CanCreate(actor); !d.Allowed {
		return CarOutput{}, NewHTTPError(http.StatusForbidden, d.Reason)
	}
	if err := validateListingFields(in.Make, in.Model, in.Year, in.Price, in.Mileage, in.ContactEmail, in.ContactWhatsApp); err != nil {
		return CarOutput{}, err
	}
	carType := model.CarType(strings.ToLower(strings.TrimSpace(in.CarType)))
	if !carType.Valid() {
		return CarOutput{}, NewHTTPError(http.StatusBadRequest, "invalid car type")
	}
	if len(in.ImageURLs) < 1 {
		return CarOutput{}, NewHTTPError(http.StatusBadRequest, "you must upload at least 1 image")
	}
	if len(in.ImageURLs) > 5 {
		return CarOutput{}, NewHTTPError(http.StatusBadRequest, "you can upload a maximum of 5 images")
	}
	if strings.TrimSpace(in.RegistrationDocURL) == "" {
		return CarOutput{}, NewHTTPError(http.StatusBadRequest, "registration document (PDF) required")
	}

	priceBDT := u.converter.ToBDT(in.Price, displayCurrency(in.Currency))

	f, err := factory.ForCarType(carType)
	if err != nil {
		return CarOutput{}, NewHTTPError(http.StatusBadRequest, "invalid car type")
	}

	var created model.Car
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		car, err := f.CreateCar(ctx, txCarCreator{r}, factory.CarSpec{
			Make:     strings.TrimSpace(in.Make),
			Model:    strings.TrimSpace(in.Model),
			Year:     in.Year,
			PriceBDT: priceBDT,
			Mileage:  in.Mileage,
			OwnerID:  actor.ID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		car.Description = strings.TrimSpace(in.Description)
		car.ContactEmail = strings.TrimSpace(in.ContactEmail)
		car.ContactWhatsApp = strings.TrimSpace(in.ContactWhatsApp)
		car.RegistrationDocURL = strings.TrimSpace(in.RegistrationDocURL)
		if err := r.Cars().Update(ctx, car); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Cars().AddImages(ctx, car.ID, in.ImageURLs); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		created = car
		return nil
	})
	if err != nil {
		return CarOutput{}, err
	}

	return u.toCarOutput(created, currency.Base), nil
}

type UpdateCarInput struct {
	Make            string
	Model           string
	Year            int
	Price           float64
	Currency        string
	Mileage         int
	CarType         string
	Description     string
	ContactEmail    string
	ContactWhatsApp string
}

// Update edits a listing's fields; only the owner may do it. A price change of
// more than 1 BDT notifies every follower: the message is built from the
// stored (old) price, delivered, and only then is the new price persisted —
// all inside one transaction.
func (u *CarUsecase) Update(ctx context.Context, actor access.Actor, carID int64, in UpdateCarInput) error {
	if carID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateListingFields(in.Make, in.Model, in.Year, in.Price, in.Mileage, in.ContactEmail, in.ContactWhatsApp); err != nil {
		return err
	}
	carType := model.CarType(strings.ToLower(strings.TrimSpace(in.CarType)))
	if !carType.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid car type")
	}

	newPriceBDT := u.converter.ToBDT(in.Price, displayCurrency(in.Currency))

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// Row-locked so a concurrent edit cannot interleave between the
		// old-price read and the price write.
		stored, err := r.Cars().FindByIDForUpdate(ctx, carID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if stored.OwnerID != actor.ID {
			return NewHTTPError(http.StatusForbidden, "you are not authorized to edit this car")
		}

		stored.Make = strings.TrimSpace(in.Make)
		stored.Model = strings.TrimSpace(in.Model)
		stored.Year = in.Year
		stored.Mileage = in.Mileage
		stored.CarType = carType
		stored.Description = strings.TrimSpace(in.Description)
		stored.ContactEmail = strings.TrimSpace(in.ContactEmail)
		stored.ContactWhatsApp = strings.TrimSpace(in.ContactWhatsApp)
		if err := r.Cars().Update(ctx, stored); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// The new price always persists; only the follower fan-out is
		// gated on the threshold. Comparison runs against the
		// authoritative stored value.
		if math.Abs(stored.Price-newPriceBDT) > 1.0 {
			followerIDs, err := r.Cars().FollowerIDs(ctx, carID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			subject := notify.NewSubject()
			for _, id := range followerIDs {
				subject.Attach(notify.NewUserObserver(id, r.Notifications()))
			}
			msg := fmt.Sprintf("The price of %s %s (%d) has changed from ৳%.0f to ৳%.0f.",
				stored.Make, stored.Model, stored.Year, stored.Price, newPriceBDT)
			if err := subject.Notify(ctx, msg); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Cars().UpdatePrice(ctx, carID, newPriceBDT); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func (u *CarUsecase) Delete(ctx context.Context, actor access.Actor, carID int64) error {
	if carID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	decision, err := u.carAccess.CanDelete(ctx, actor, carID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !decision.Allowed {
		return NewHTTPError(http.StatusForbidden, decision.Reason)
	}

	if err := u.cars.Delete(ctx, carID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Follow toggles following and reports the new state.
func (u *CarUsecase) Follow(ctx context.Context, actor access.Actor, carID int64) (bool, error) {
	if !actor.IsAuthenticated {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if carID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.cars.FindByID(ctx, carID); err != nil {
		if err == repo.ErrNotFound {
			return false, NewHTTPError(http.StatusNotFound, "not found")
		}
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	following, err := u.cars.IsFollower(ctx, carID, actor.ID)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if following {
		if err := u.cars.RemoveFollower(ctx, carID, actor.ID); err != nil {
			return false, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return false, nil
	}
	if err := u.cars.AddFollower(ctx, carID, actor.ID); err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return true, nil
}

// MyCars lists the actor's own listings regardless of approval state.
func (u *CarUsecase) MyCars(ctx context.Context, userID int64) ([]CarOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	cars, err := u.cars.ListByOwner(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	outs := make([]CarOutput, 0, len(cars))
	for _, car := range cars {
		outs = append(outs, u.toCarOutput(car, currency.Base))
	}
	return outs, nil
}

func (u *CarUsecase) toCarOutput(car model.Car, code string) CarOutput {
	images := make([]string, 0, len(car.Images))
	for _, img := range car.Images {
		images = append(images, img.URL)
	}
	return CarOutput{
		ID:              car.ID,
		Make:            car.Make,
		Model:           car.Model,
		Year:            car.Year,
		Mileage:         car.Mileage,
		CarType:         string(car.CarType),
		Description:     car.Description,
		Status:          string(car.Status),
		ApprovalStatus:  string(car.ApprovalStatus),
		OwnerID:         car.OwnerID,
		ContactEmail:    car.ContactEmail,
		ContactWhatsApp: car.ContactWhatsApp,
		Images:          images,
		PriceBDT:        car.Price,
		DisplayPrice:    u.converter.FromBDT(car.Price, code),
		Currency:        code,
		CurrencySymbol:  u.converter.Symbol(code),
		CreatedAt:       car.CreatedAt,
	}
}

func validateListingFields(make_, model_ string, year int, price float64, mileage int, contactEmail, contactWhatsApp string) error {
	if strings.TrimSpace(make_) == "" {
		return NewHTTPError(http.StatusBadRequest, "make required")
	}
	if strings.TrimSpace(model_) == "" {
		return NewHTTPError(http.StatusBadRequest, "model required")
	}
	if year < minListingYear || year > time.Now().Year()+1 {
		return NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if mileage < 0 {
		return NewHTTPError(http.StatusBadRequest, "mileage must be >= 0")
	}
	if strings.TrimSpace(contactEmail) == "" && strings.TrimSpace(contactWhatsApp) == "" {
		return NewHTTPError(http.StatusBadRequest, "you must provide at least one contact method (email or WhatsApp)")
	}
	if e := strings.TrimSpace(contactEmail); e != "" && !emailRe.MatchString(e) {
		return NewHTTPError(http.StatusBadRequest, "invalid contact email")
	}
	if w := strings.TrimSpace(contactWhatsApp); w != "" && !whatsappRe.MatchString(w) {
		return NewHTTPError(http.StatusBadRequest, "whatsapp number must include a country code")
	}
	return nil
}

func parseAddOns(raw []string) ([]pricing.AddOn, error) {
	selected := make([]pricing.AddOn, 0, len(raw))
	for _, s := range raw {
		a := pricing.AddOn(strings.ToLower(strings.TrimSpace(s)))
		if !a.Valid() {
			return nil, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown add-on %q", s))
		}
		selected = append(selected, a)
	}
	return selected, nil
}

func displayCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return currency.Base
	}
	return code
}

// txCarCreator adapts the tx-bound car repository to the factory's creator.
type txCarCreator struct {
	r repo.TxRepos
}

func (t txCarCreator) Create(ctx context.Context, car model.Car) (model.Car, error) {
	return t.r.Cars().Create(ctx, car)
}
