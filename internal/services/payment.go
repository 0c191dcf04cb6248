package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"muraqqa/internal/domain"
	"muraqqa/internal/validate"
)

type PaymentIntent struct {
	IntentID     string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

type PaymentResult struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

// PaymentGateway is the boundary between the order state machine and any real
// processor. Format validation fails synchronously and never reaches the
// state machine; a processor decline leaves the order PENDING so the buyer
// can retry.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, o domain.Order) (PaymentIntent, error)
	Confirm(ctx context.Context, intentID string, card domain.CardDetails) (PaymentResult, error)
}

// CardGateway simulates a card processor: requests succeed unless the card
// number matches the declined test pattern. The context is the real
// cancellation/timeout boundary for the (would-be) network call.
type CardGateway struct{}

func (g *CardGateway) CreateIntent(ctx context.Context, o domain.Order) (PaymentIntent, error) {
	if err := ctx.Err(); err != nil {
		return PaymentIntent{}, ErrGatewayUnavailable
	}
	if o.Total <= 0 {
		return PaymentIntent{}, Invalid("order", "nothing to charge")
	}
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return PaymentIntent{IntentID: id, ClientSecret: id + "_secret_" + uuid.NewString()[:8]}, nil
}

func (g *CardGateway) Confirm(ctx context.Context, intentID string, card domain.CardDetails) (PaymentResult, error) {
	num, ok := validate.CardNumber(card.Number)
	if !ok {
		return PaymentResult{}, Invalid("cardNumber", "must be 16 digits")
	}
	if !validate.CardExpiry(card.Expiry) {
		return PaymentResult{}, Invalid("cardExpiry", "must be MM/YY")
	}
	if !validate.CardCVC(card.CVC) {
		return PaymentResult{}, Invalid("cardCvc", "must be 3 digits")
	}
	if err := ctx.Err(); err != nil {
		return PaymentResult{}, ErrGatewayUnavailable
	}
	if strings.HasSuffix(num, "0000") {
		return PaymentResult{}, ErrPaymentDeclined
	}
	return PaymentResult{Success: true, Reference: "ch_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]}, nil
}

// BankTransferGateway models manual settlement: no intent is created and the
// confirmation reference is whatever the operator recorded from the bank.
type BankTransferGateway struct{}

func (g *BankTransferGateway) CreateIntent(ctx context.Context, o domain.Order) (PaymentIntent, error) {
	return PaymentIntent{}, Invalid("paymentMethod", "bank transfers do not use payment intents")
}

func (g *BankTransferGateway) Confirm(ctx context.Context, reference string, _ domain.CardDetails) (PaymentResult, error) {
	if strings.TrimSpace(reference) == "" {
		return PaymentResult{}, Invalid("reference", "transaction reference required")
	}
	return PaymentResult{Success: true, Reference: reference}, nil
}
