package handlers

import (
	"github.com/gofiber/fiber/v2"

	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type FavoritesHandler struct {
	Favorites *services.FavoritesService
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	arts, err := h.Favorites.List(ensureSID(c))
	if err != nil {
		return fail(c, "favorites.list", err)
	}
	return c.JSON(fiber.Map{"favorites": arts})
}

func (h *FavoritesHandler) Save(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artwork id"})
	}
	if err := h.Favorites.Save(ensureSID(c), id); err != nil {
		return fail(c, "favorites.save", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artwork id"})
	}
	if err := h.Favorites.Unsave(ensureSID(c), id); err != nil {
		return fail(c, "favorites.remove", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
