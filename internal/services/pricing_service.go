package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"muraqqa/internal/domain"
)

// DomesticCountry is the gallery's home market; duty applies everywhere else.
const DomesticCountry = "Pakistan"

// isDomestic matches the destination against the home market without caring
// how the buyer cased it.
func isDomestic(country string) bool {
	return strings.EqualFold(strings.TrimSpace(country), DomesticCountry)
}

// PricingService recomputes order totals from scratch on every call. Nothing
// is patched incrementally, so repeated calls on the same cart state always
// agree.
type PricingService struct {
	Discounts DiscountStore
	dutyRate  decimal.Decimal
}

func NewPricingService(discounts DiscountStore, dutyBP int64) *PricingService {
	return &PricingService{
		Discounts: discounts,
		dutyRate:  decimal.NewFromInt(dutyBP).Div(decimal.NewFromInt(10000)),
	}
}

// Price computes subtotal, duty, discount and grand total in the base
// currency. shipping is the caller-selected option's cost; duty never applies
// to shipping.
func (s *PricingService) Price(lines []domain.LineItem, country string, shipping int64, discountCode string) (domain.PricingResult, error) {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.LinePrice()
	}

	var tax int64
	if !isDomestic(country) {
		tax = domain.RoundHalfUp(subtotal, s.dutyRate)
	}

	var discount int64
	if discountCode != "" {
		d, ok, err := s.Discounts.FindDiscount(discountCode)
		if err != nil {
			return domain.PricingResult{}, err
		}
		if ok {
			discount = d.Amount(subtotal)
		}
		// unknown code: not applied, not an error
	}

	total := subtotal + shipping + tax - discount
	if total < 0 {
		total = 0
	}

	return domain.PricingResult{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Discount:     discount,
		Total:        total,
		Currency:     domain.PKR,
	}, nil
}
