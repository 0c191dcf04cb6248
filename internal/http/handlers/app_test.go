package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"muraqqa/internal/config"
	"muraqqa/internal/http/handlers"
	"muraqqa/internal/repos"
	"muraqqa/internal/services"
)

// newTestApp wires the full route table over the in-memory store, the same
// shape main() builds minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *repos.MemStore) {
	t.Helper()
	mem := repos.NewMemStore().SeedDemo()
	st := services.Stores{
		Artworks: mem, Artists: mem, Carts: mem, Orders: mem,
		Discounts: mem, Users: mem, Favorites: mem,
	}
	cfg := config.Config{
		Shipping: config.ShippingConfig{DomesticRate: 500, InternationalRate: 8500, EnableDHL: true},
		DutyBP:   500,
	}
	deps := handlers.NewDeps(st, cfg)
	authSvc := deps.AuthSvc

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	app.Get("/artworks", deps.Catalog.List)
	app.Get("/artworks/:id", deps.Catalog.Detail)
	app.Get("/artists", deps.Catalog.Artists)
	app.Get("/artists/:id", deps.Catalog.Artist)

	app.Get("/cart", deps.Cart.View)
	app.Post("/cart", deps.Cart.Add)
	app.Post("/cart/remove", deps.Cart.Remove)
	app.Post("/cart/clear", deps.Cart.Clear)

	app.Get("/favorites", deps.Favorites.List)
	app.Post("/favorites/:id", deps.Favorites.Save)
	app.Delete("/favorites/:id", deps.Favorites.Remove)

	app.Get("/checkout/shipping", deps.Checkout.ShippingOptions)
	app.Post("/checkout/quote", deps.Checkout.Quote)
	app.Post("/checkout", deps.Checkout.Submit)

	app.Get("/orders", handlers.RequireUser(authSvc), deps.Order.History)
	app.Get("/orders/:id", deps.Order.Get)
	app.Get("/orders/:id/invoice", deps.Order.Invoice)
	app.Post("/orders/:id/cancel", deps.Order.Cancel)
	app.Post("/orders/:id/intent", deps.Payment.CreateIntent)
	app.Post("/orders/:id/pay", deps.Payment.ConfirmCard)
	app.Get("/orders/:id/payment", deps.Payment.Status)

	app.Post("/login", deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.Admin.ListOrders)
	admin.Post("/orders/:id/processing", deps.Admin.MarkProcessing)
	admin.Post("/orders/:id/shipped", deps.Admin.MarkShipped)
	admin.Post("/orders/:id/delivered", deps.Admin.MarkDelivered)
	admin.Post("/orders/:id/cancel", deps.Admin.Cancel)
	admin.Post("/orders/:id/bank-transfer", deps.Payment.ConfirmBankTransfer)

	return app, mem
}

func jsonReq(method, target, sid string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("bad json %q: %v", raw, err)
	}
}
