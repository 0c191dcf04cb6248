package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	PKR Currency = "PKR" // base currency; all stored amounts are integer paisa
	USD Currency = "USD"
	GBP Currency = "GBP"
)

// DisplayRates converts one base minor unit into the target currency's minor
// unit. PKR is the identity rate; everything else is presentation only.
var DisplayRates = map[Currency]decimal.Decimal{
	PKR: decimal.NewFromInt(1),
	USD: decimal.RequireFromString("0.0036"),
	GBP: decimal.RequireFromString("0.0028"),
}

var ErrInvalidCurrency = errors.New("unconfigured currency")

// Money is a fixed-point amount in minor units. Order totals are always
// computed and persisted in PKR; conversion happens only on the read path.
type Money struct {
	Amount   int64    `json:"amount" db:"amount"`
	Currency Currency `json:"currency" db:"currency"`
}

func Paisa(amount int64) Money { return Money{Amount: amount, Currency: PKR} }

func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("add %s to %s: %w", o.Currency, m.Currency, ErrInvalidCurrency)
	}
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("subtract %s from %s: %w", o.Currency, m.Currency, ErrInvalidCurrency)
	}
	return Money{Amount: m.Amount - o.Amount, Currency: m.Currency}, nil
}

// MulRate multiplies the amount by an arbitrary rate and rounds half-up to
// the minor unit. It never mutates the receiver.
func (m Money) MulRate(rate decimal.Decimal) Money {
	v := decimal.NewFromInt(m.Amount).Mul(rate).Round(0)
	return Money{Amount: v.IntPart(), Currency: m.Currency}
}

// ConvertForDisplay returns the amount in the target currency's minor units.
// Pure presentation: the result must never be persisted or compared against
// stored amounts.
func (m Money) ConvertForDisplay(target Currency) (Money, error) {
	rate, ok := DisplayRates[target]
	if !ok {
		return Money{}, fmt.Errorf("convert to %s: %w", target, ErrInvalidCurrency)
	}
	if target == m.Currency {
		return m, nil
	}
	v := decimal.NewFromInt(m.Amount).Mul(rate).Round(0)
	return Money{Amount: v.IntPart(), Currency: target}, nil
}

// String formats the amount in major units for display, e.g. "PKR 4500.00".
func (m Money) String() string {
	n := m.Amount
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s %s%d.%02d", m.Currency, sign, n/100, n%100)
}

// RoundHalfUp applies rate to a raw minor-unit amount.
func RoundHalfUp(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}
