package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

// AdminHandler is the back-office surface. Every route behind it is mounted
// under RequireAdmin, so the handlers themselves only do the work.
type AdminHandler struct {
	Orders *services.OrderService
}

func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.Latest(c.QueryInt("limit", 50))
	if err != nil {
		return fail(c, "admin.orders", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *AdminHandler) MarkProcessing(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	o, err := h.Orders.MarkProcessing(id)
	if err != nil {
		return fail(c, "admin.processing", err)
	}
	applog.Audit(c, "order.processing", map[string]any{"order_id": id})
	return c.JSON(o)
}

func (h *AdminHandler) MarkShipped(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var body struct {
		TrackingRef string `json:"trackingRef"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	o, err := h.Orders.MarkShipped(id, body.TrackingRef)
	if err != nil {
		return fail(c, "admin.shipped", err)
	}
	applog.Audit(c, "order.shipped", map[string]any{"order_id": id, "tracking": body.TrackingRef})
	return c.JSON(o)
}

func (h *AdminHandler) MarkDelivered(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	o, err := h.Orders.MarkDelivered(id)
	if err != nil {
		return fail(c, "admin.delivered", err)
	}
	applog.Audit(c, "order.delivered", map[string]any{"order_id": id})
	return c.JSON(o)
}

func (h *AdminHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	o, err := h.Orders.Cancel(id)
	if err != nil {
		return fail(c, "admin.cancel", err)
	}
	applog.Audit(c, "order.cancelled.admin", map[string]any{"order_id": id})
	return c.JSON(o)
}
