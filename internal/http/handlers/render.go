package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"muraqqa/internal/domain"
	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
)

// ensureSID returns the session cookie, minting one if absent. The sid is the
// single-writer key for the cart and the opaque buyer credential elsewhere.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// fail maps service errors onto the wire. Validation and business rejections
// are the caller's problem; transition violations and unknown errors are ours
// and get logged as faults.
func fail(c *fiber.Ctx, action string, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidSelection),
		errors.Is(err, services.ErrUnsupportedDestination),
		errors.Is(err, domain.ErrInvalidCurrency):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrStaleCart):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentDeclined):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrGatewayUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		applog.Error(c, action+".transition", err, nil)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, sql.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// displayCurrency parses the optional ?currency= query, defaulting to base.
func displayCurrency(c *fiber.Ctx) domain.Currency {
	switch c.Query("currency") {
	case "USD":
		return domain.USD
	case "GBP":
		return domain.GBP
	default:
		return domain.PKR
	}
}
