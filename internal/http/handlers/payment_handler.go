package handlers

import (
	"github.com/gofiber/fiber/v2"

	"muraqqa/internal/domain"
	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type PaymentHandler struct {
	Orders *services.OrderService
	Auth   *services.AuthService
}

// CreateIntent re-issues a payment intent for a PENDING card order. Used when
// the gateway was down at submit time or the client lost the original secret.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	if err := h.authorize(c, id); err != nil {
		return err
	}
	intent, err := h.Orders.CreateIntent(c.UserContext(), id)
	if err != nil {
		return fail(c, "payment.intent", err)
	}
	return c.JSON(intent)
}

// ConfirmCard charges the card and, on approval, moves the order to PAID.
func (h *PaymentHandler) ConfirmCard(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var body struct {
		Number string `json:"number"`
		Expiry string `json:"expiry"`
		CVC    string `json:"cvc"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	if err := h.authorize(c, id); err != nil {
		return err
	}

	order, err := h.Orders.PayWithCard(c.UserContext(), id, domain.CardDetails{
		Number: body.Number,
		Expiry: body.Expiry,
		CVC:    body.CVC,
	})
	if err != nil {
		applog.Audit(c, "payment.card.rejected", map[string]any{"order_id": id})
		return fail(c, "payment.card", err)
	}
	applog.Audit(c, "payment.card.confirmed", map[string]any{"order_id": id, "ref": order.PaymentRef})
	return c.JSON(order)
}

// Status reports where the order's payment stands without exposing buyer PII.
func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	if err := h.authorize(c, id); err != nil {
		return err
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, "payment.status", err)
	}
	// paid_at is written once on the PAID transition, so a later cancellation
	// (refund pending) still reports that money moved.
	return c.JSON(fiber.Map{
		"orderId":    o.ID,
		"status":     o.Status,
		"paid":       o.PaidAt != "",
		"paidAt":     o.PaidAt,
		"paymentRef": o.PaymentRef,
	})
}

// ConfirmBankTransfer is the back-office acknowledgement that a wire arrived.
// Admin only; the reference is the bank's transaction id.
func (h *PaymentHandler) ConfirmBankTransfer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var body struct {
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	if body.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reference required"})
	}

	order, err := h.Orders.ConfirmBankTransfer(id, body.Reference)
	if err != nil {
		return fail(c, "payment.bank", err)
	}
	applog.Audit(c, "payment.bank.confirmed", map[string]any{"order_id": id, "ref": body.Reference})
	return c.JSON(order)
}

// authorize rejects callers who neither own the order's session, match its
// buyer, nor hold the admin role. Returns nil when the request may proceed.
func (h *PaymentHandler) authorize(c *fiber.Ctx, orderID string) error {
	return authorizeOrder(c, h.Orders, h.Auth, orderID)
}
