package services

import (
	"log"

	"muraqqa/internal/domain"
)

// Notifier is the external notification collaborator. Calls are
// fire-and-forget: a failure here never rolls back an order.
type Notifier interface {
	SendOrderConfirmation(o domain.Order) error
	SendRefundRequested(o domain.Order) error
}

// LogNotifier is the default implementation; real email delivery lives
// outside this service.
type LogNotifier struct{}

func (LogNotifier) SendOrderConfirmation(o domain.Order) error {
	log.Printf("[notify] order confirmation: order=%s email=%s total=%d", o.ID, o.CustomerEmail, o.Total)
	return nil
}

func (LogNotifier) SendRefundRequested(o domain.Order) error {
	log.Printf("[notify] refund requested: order=%s payment_ref=%s", o.ID, o.PaymentRef)
	return nil
}
