package services

import (
	"sort"

	"muraqqa/internal/config"
	"muraqqa/internal/domain"
)

// ShippingService resolves flat country-tier rates. Options are ephemeral:
// recomputed on every checkout attempt, never persisted on their own.
type ShippingService struct {
	cfg config.ShippingConfig
	// explicit block-list; empty in current scope, so Options always succeeds
	blocked map[string]bool
}

func NewShippingService(cfg config.ShippingConfig) *ShippingService {
	return &ShippingService{cfg: cfg, blocked: map[string]bool{}}
}

// Options returns the ranked (cheapest-first) shipping options for a
// destination. The flat domestic/international rate is always present as a
// fallback, so the result is never empty.
func (s *ShippingService) Options(country string, lines []domain.LineItem) ([]domain.ShippingOption, error) {
	if s.blocked[country] {
		return nil, ErrUnsupportedDestination
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.LinePrice()
	}

	var opts []domain.ShippingOption
	if isDomestic(country) {
		rate := s.cfg.DomesticRate
		if s.cfg.FreeShipThreshold > 0 && subtotal >= s.cfg.FreeShipThreshold {
			rate = 0
		}
		opts = append(opts, domain.ShippingOption{
			ID:            "domestic-courier",
			Provider:      "Gallery Courier",
			ServiceLabel:  "Insured domestic delivery",
			Price:         rate,
			EstimatedDays: "3-5 days",
		})
	} else {
		opts = append(opts, domain.ShippingOption{
			ID:            "intl-registered",
			Provider:      "Registered Post",
			ServiceLabel:  "International registered shipping",
			Price:         s.cfg.InternationalRate,
			EstimatedDays: "10-15 days",
		})
		if s.cfg.EnableDHL {
			opts = append(opts, domain.ShippingOption{
				ID:            "intl-dhl",
				Provider:      "DHL",
				ServiceLabel:  "DHL Express international",
				Price:         s.cfg.InternationalRate * 2,
				EstimatedDays: "3-7 days",
			})
		}
	}

	sort.SliceStable(opts, func(i, j int) bool { return opts[i].Price < opts[j].Price })
	return opts, nil
}

// Resolve finds a previously offered option by id for the same destination
// and cart contents.
func (s *ShippingService) Resolve(country, optionID string, lines []domain.LineItem) (domain.ShippingOption, error) {
	opts, err := s.Options(country, lines)
	if err != nil {
		return domain.ShippingOption{}, err
	}
	for _, o := range opts {
		if o.ID == optionID {
			return o, nil
		}
	}
	return domain.ShippingOption{}, Invalid("shippingOptionId", "unknown shipping option for destination")
}
