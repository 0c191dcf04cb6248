package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"muraqqa/internal/domain"
	"muraqqa/internal/services"
)

func TestCardGatewayIntent(t *testing.T) {
	g := &services.CardGateway{}

	intent, err := g.CreateIntent(context.Background(), domain.Order{ID: "ORD-TEST", Total: 450500})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(intent.IntentID, "pi_") || intent.ClientSecret == "" {
		t.Fatalf("bad intent: %+v", intent)
	}

	if _, err := g.CreateIntent(context.Background(), domain.Order{Total: 0}); err == nil {
		t.Fatal("zero-total order must not create an intent")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.CreateIntent(ctx, domain.Order{Total: 100}); !errors.Is(err, services.ErrGatewayUnavailable) {
		t.Fatalf("want ErrGatewayUnavailable on cancelled ctx, got %v", err)
	}
}

func TestCardGatewayConfirm(t *testing.T) {
	g := &services.CardGateway{}
	ctx := context.Background()

	res, err := g.Confirm(ctx, "pi_x", domain.CardDetails{Number: "4242 4242 4242 4242", Expiry: "12/27", CVC: "123"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || !strings.HasPrefix(res.Reference, "ch_") {
		t.Fatalf("bad confirm result: %+v", res)
	}

	// the declined test pattern
	_, err = g.Confirm(ctx, "pi_x", domain.CardDetails{Number: "4242424242420000", Expiry: "12/27", CVC: "123"})
	if !errors.Is(err, services.ErrPaymentDeclined) {
		t.Fatalf("want ErrPaymentDeclined, got %v", err)
	}
}

func TestCardGatewayConfirmValidatesFormat(t *testing.T) {
	g := &services.CardGateway{}
	ctx := context.Background()
	var ve *services.ValidationError

	cases := []domain.CardDetails{
		{Number: "1234", Expiry: "12/27", CVC: "123"},
		{Number: "4242424242424242", Expiry: "13/27", CVC: "123"},
		{Number: "4242424242424242", Expiry: "2027-12", CVC: "123"},
		{Number: "4242424242424242", Expiry: "12/27", CVC: "12"},
	}
	for i, card := range cases {
		if _, err := g.Confirm(ctx, "pi_x", card); !errors.As(err, &ve) {
			t.Fatalf("case %d: want validation error, got %v", i, err)
		}
	}
}

func TestBankTransferGateway(t *testing.T) {
	g := &services.BankTransferGateway{}
	ctx := context.Background()

	if _, err := g.CreateIntent(ctx, domain.Order{Total: 100}); err == nil {
		t.Fatal("bank transfers must not create intents")
	}

	res, err := g.Confirm(ctx, "TXN-20260901-001", domain.CardDetails{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reference != "TXN-20260901-001" {
		t.Fatalf("reference must pass through, got %q", res.Reference)
	}

	if _, err := g.Confirm(ctx, "  ", domain.CardDetails{}); err == nil {
		t.Fatal("empty reference must be rejected")
	}
}
