package handlers

import (
	"github.com/gofiber/fiber/v2"

	"muraqqa/internal/domain"
	applog "muraqqa/internal/log"
	"muraqqa/internal/services"
	"muraqqa/internal/validate"
)

type OrderHandler struct {
	Orders   *services.OrderService
	Invoices *services.InvoiceService
	Auth     *services.AuthService
}

// authorizeOrder gates access to a single order: the session that placed it,
// the signed-in buyer it belongs to, or an admin. Unknown orders 404 before
// the ownership check so the id space leaks nothing.
func authorizeOrder(c *fiber.Ctx, orders *services.OrderService, auth *services.AuthService, orderID string) error {
	o, err := orders.Get(orderID)
	if err != nil {
		return fail(c, "order.authorize", err)
	}
	sid := c.Cookies("sid")
	if sid != "" && o.SessionID == sid {
		return nil
	}
	if u, err := auth.CurrentUser(sid); err == nil && u != nil {
		if u.Role == "ADMIN" || (o.BuyerRef != "" && o.BuyerRef == u.ID) {
			return nil
		}
	}
	applog.Security(c, "order.access.denied", map[string]any{"order_id": orderID})
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	if err := authorizeOrder(c, h.Orders, h.Auth, id); err != nil {
		return err
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, "order.get", err)
	}
	return c.JSON(o)
}

// History lists the signed-in buyer's orders, newest first. Guest orders made
// under the same browser session are folded in.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	orders, err := h.Orders.History(u.ID, c.Cookies("sid"))
	if err != nil {
		return fail(c, "order.history", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	if err := authorizeOrder(c, h.Orders, h.Auth, id); err != nil {
		return err
	}
	o, err := h.Orders.Cancel(id)
	if err != nil {
		return fail(c, "order.cancel", err)
	}
	applog.Audit(c, "order.cancelled", map[string]any{"order_id": id})
	return c.JSON(o)
}

// Invoice renders the printable invoice page. ?currency=USD|GBP converts the
// displayed figures; the order's stored totals stay in base currency.
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	if err := authorizeOrder(c, h.Orders, h.Auth, id); err != nil {
		return err
	}
	inv, err := h.Invoices.Assemble(id, displayCurrency(c))
	if err != nil {
		return fail(c, "order.invoice", err)
	}
	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.JSON(inv)
	}
	return c.Render("invoice", fiber.Map{"Invoice": inv})
}
