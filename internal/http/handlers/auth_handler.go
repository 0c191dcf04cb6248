package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request body"})
	}
	email, ok := validate.Email(body.Email)
	if !ok || !validate.Password(body.Password) {
		applog.Security(c, "login.validation.fail", nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email or password"})
	}

	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, email, body.Password)
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}
	applog.Audit(c, "login.ok", map[string]any{"user_id": u.ID})
	return c.JSON(u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	return c.JSON(fiber.Map{"ok": true})
}
