package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"muraqqa/internal/domain"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to domain.OrderStatus
	}{
		{domain.StatusPending, domain.StatusPaid},
		{domain.StatusPending, domain.StatusCancelled},
		{domain.StatusPaid, domain.StatusProcessing},
		{domain.StatusPaid, domain.StatusShipped},
		{domain.StatusPaid, domain.StatusCancelled},
		{domain.StatusProcessing, domain.StatusShipped},
		{domain.StatusProcessing, domain.StatusCancelled},
		{domain.StatusShipped, domain.StatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from, to domain.OrderStatus
	}{
		{domain.StatusPending, domain.StatusShipped},
		{domain.StatusPending, domain.StatusDelivered},
		{domain.StatusPaid, domain.StatusPending},
		{domain.StatusShipped, domain.StatusCancelled},
		{domain.StatusShipped, domain.StatusPaid},
		{domain.StatusDelivered, domain.StatusCancelled},
		{domain.StatusCancelled, domain.StatusPaid},
		{domain.StatusPaid, domain.StatusPaid},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, domain.StatusDelivered.IsTerminal())
	assert.True(t, domain.StatusCancelled.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusShipped.IsTerminal())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []domain.OrderStatus{
		domain.StatusPending, domain.StatusPaid, domain.StatusProcessing,
		domain.StatusShipped, domain.StatusDelivered, domain.StatusCancelled,
	} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, domain.OrderStatus("REFUNDED").Valid())
	assert.False(t, domain.OrderStatus("").Valid())
}
