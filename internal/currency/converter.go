package currency

// Base is the currency every price is persisted in.
const Base = "BDT"

// Converter converts between the BDT base unit and display currencies, and
// supplies display symbols. All conversions are pure and synchronous.
type Converter interface {
	ToBDT(amount float64, code string) float64
	FromBDT(amountBDT float64, code string) float64
	Symbol(code string) string
}

// Exchange rates: 1 unit of currency = X BDT.
var exchangeRates = map[string]float64{
	"BDT": 1.0,
	"USD": 120.0,
	"GBP": 150.0,
	"EUR": 130.0,
	"INR": 1.45,
}

var currencySymbols = map[string]string{
	"BDT": "৳",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"INR": "₹",
}

// fixedRateAPI has the rate provider's own shape: it hands out raw rates and
// arithmetic helpers rather than code-keyed conversions. The adapter below
// keeps that shape out of caller code.
type fixedRateAPI struct{}

func (fixedRateAPI) ExchangeRate(code string) float64 {
	if rate, ok := exchangeRates[code]; ok {
		return rate
	}
	return 1.0
}

func (fixedRateAPI) SymbolFor(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return currencySymbols[Base]
}

func (fixedRateAPI) MultiplyByRate(amount, rate float64) float64 {
	return amount * rate
}

func (fixedRateAPI) DivideByRate(amount, rate float64) float64 {
	return amount / rate
}

type adapter struct {
	api fixedRateAPI
}

// NewConverter returns the fixed-rate converter. Unknown currency codes fall
// back to the base rate and symbol.
func NewConverter() Converter {
	return adapter{}
}

func (a adapter) ToBDT(amount float64, code string) float64 {
	rate := a.api.ExchangeRate(code)
	return a.api.MultiplyByRate(amount, rate)
}

func (a adapter) FromBDT(amountBDT float64, code string) float64 {
	rate := a.api.ExchangeRate(code)
	return a.api.DivideByRate(amountBDT, rate)
}

func (a adapter) Symbol(code string) string {
	return a.api.SymbolFor(code)
}

// Codes lists the supported display currencies.
func Codes() []string {
	return []string{"BDT", "USD", "GBP", "EUR", "INR"}
}
