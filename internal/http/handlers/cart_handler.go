package handlers

import (
	"github.com/gofiber/fiber/v2"

	"muraqqa/internal/domain"
	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var body struct {
		ArtworkID string `json:"artworkId"`
		Kind      string `json:"kind"`
		PrintSize string `json:"printSize"`
		Qty       int    `json:"qty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	id, ok := validate.ID(body.ArtworkID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artworkId"})
	}

	sid := ensureSID(c)
	line, err := h.Cart.Add(sid, id,
		domain.PurchaseKind(body.Kind), domain.PrintSize(body.PrintSize), validate.QtyInt(body.Qty))
	if err != nil {
		return fail(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"artwork_id": id, "kind": body.Kind})
	return c.Status(fiber.StatusCreated).JSON(line)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var body struct {
		LineID string `json:"lineId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	lineID, ok := validate.ID(body.LineID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid lineId"})
	}
	if err := h.Cart.Remove(ensureSID(c), lineID); err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(ensureSID(c)); err != nil {
		return fail(c, "cart.clear", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
