package handlers

import (
	"github.com/gofiber/fiber/v2"

	"muraqqa/internal/domain"
	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Pricing  *services.PricingService
	Shipping *services.ShippingService
	Orders   *services.OrderService
	Auth     *services.AuthService
}

// ShippingOptions lists the rates available for a destination, priced against
// the caller's current cart.
func (h *CheckoutHandler) ShippingOptions(c *fiber.Ctx) error {
	country, ok := validate.Country(c.Query("country"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid country"})
	}
	lines, err := h.Cart.Items(ensureSID(c))
	if err != nil {
		return fail(c, "checkout.shipping", err)
	}
	opts, err := h.Shipping.Options(country, lines)
	if err != nil {
		return fail(c, "checkout.shipping", err)
	}
	return c.JSON(fiber.Map{"country": country, "options": opts})
}

// Quote prices the current cart without creating an order. The same pricing
// path runs again at submit, so the preview can never drift from the charge.
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	var body struct {
		Country          string `json:"country"`
		ShippingOptionID string `json:"shippingOptionId"`
		DiscountCode     string `json:"discountCode"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	country, ok := validate.Country(body.Country)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid country"})
	}
	code, ok := validate.DiscountCode(body.DiscountCode)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid discount code"})
	}

	lines, err := h.Cart.Items(ensureSID(c))
	if err != nil {
		return fail(c, "checkout.quote", err)
	}
	if len(lines) == 0 {
		return fail(c, "checkout.quote", services.ErrEmptyCart)
	}
	opt, err := h.Shipping.Resolve(country, body.ShippingOptionID, lines)
	if err != nil {
		return fail(c, "checkout.quote", err)
	}
	res, err := h.Pricing.Price(lines, country, opt.Price, code)
	if err != nil {
		return fail(c, "checkout.quote", err)
	}
	return c.JSON(res)
}

// Submit turns the cart into a PENDING order. For card payments the response
// carries the payment intent the client confirms next.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var body struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		Address          string `json:"address"`
		Country          string `json:"country"`
		ShippingOptionID string `json:"shippingOptionId"`
		DiscountCode     string `json:"discountCode"`
		PaymentMethod    string `json:"paymentMethod"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	country, ok := validate.Country(body.Country)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid country"})
	}
	// Same normalization as Quote, so the submitted code prices identically
	// to the previewed one.
	code, ok := validate.DiscountCode(body.DiscountCode)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid discount code"})
	}

	sid := ensureSID(c)
	buyerRef := ""
	if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
		buyerRef = u.ID
	}

	order, intent, err := h.Orders.Submit(c.UserContext(), sid, buyerRef, services.SubmitRequest{
		Name:             body.Name,
		Email:            body.Email,
		Address:          body.Address,
		Country:          country,
		ShippingOptionID: body.ShippingOptionID,
		DiscountCode:     code,
		PaymentMethod:    domain.PaymentMethod(body.PaymentMethod),
	})
	if err != nil {
		// A gateway fault after the order persisted is recoverable: hand the
		// order back so the client can retry intent creation.
		if order.ID != "" {
			applog.Error(c, "checkout.submit.intent", err, map[string]any{"order_id": order.ID})
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"order": order,
				"error": "payment intent creation failed, retry via /orders/:id/intent",
			})
		}
		return fail(c, "checkout.submit", err)
	}

	applog.Audit(c, "order.submitted", map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
		"method":   string(order.PaymentMethod),
	})
	resp := fiber.Map{"order": order}
	if intent.IntentID != "" {
		resp["paymentIntent"] = intent
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
