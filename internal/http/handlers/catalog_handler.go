package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	q := ""
	if raw := strings.TrimSpace(c.Query("q")); raw != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid search query"})
		}
	}
	arts, err := h.Catalog.List(c.Query("category"), q, c.QueryInt("page", 1), c.QueryInt("pageSize", 12))
	if err != nil {
		return fail(c, "catalog.list", err)
	}
	return c.JSON(fiber.Map{"artworks": arts})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artwork id"})
	}
	art, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, "catalog.detail", err)
	}
	av, err := h.Catalog.Availability(id)
	if err != nil {
		return fail(c, "catalog.detail", err)
	}
	return c.JSON(fiber.Map{"artwork": art, "availability": av})
}

func (h *CatalogHandler) Artists(c *fiber.Ctx) error {
	artists, err := h.Catalog.ListArtists()
	if err != nil {
		return fail(c, "catalog.artists", err)
	}
	return c.JSON(fiber.Map{"artists": artists})
}

func (h *CatalogHandler) Artist(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist id"})
	}
	a, err := h.Catalog.GetArtist(id)
	if err != nil {
		return fail(c, "catalog.artist", err)
	}
	return c.JSON(a)
}
