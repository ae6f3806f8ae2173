package forms

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var (
	errPriceInvalid   = errors.New("Sale price must be a valid amount")
	errPriceNegative  = errors.New("Sale price cannot be negative")
	errPricePrecision = errors.New("Sale price cannot have more than 2 decimal places")
)

// Rupees is a price in major units with at most two decimal places. The
// backend stores paise, so every price crosses the x100 boundary exactly
// once in each direction.
type Rupees struct {
	amount decimal.Decimal
}

// ParseRupees validates a price input: a non-negative decimal with at most
// two fractional digits.
func ParseRupees(input string) (Rupees, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return Rupees{}, errPriceInvalid
	}
	if amount.IsNegative() {
		return Rupees{}, errPriceNegative
	}
	if amount.Exponent() < -2 {
		return Rupees{}, errPricePrecision
	}
	return Rupees{amount: amount}, nil
}

// RupeesFromPaise converts the backend's minor units for display.
func RupeesFromPaise(paise int64) Rupees {
	return Rupees{amount: decimal.NewFromInt(paise).Div(hundred)}
}

// Paise converts to minor units. Exact because the amount carries at most
// two fractional digits.
func (r Rupees) Paise() int64 {
	return r.amount.Mul(hundred).IntPart()
}

// Float64 is the JSON payload representation.
func (r Rupees) Float64() float64 {
	f, _ := r.amount.Float64()
	return f
}

func (r Rupees) String() string {
	return r.amount.StringFixed(2)
}

func (r Rupees) Equal(other Rupees) bool {
	return r.amount.Equal(other.amount)
}
