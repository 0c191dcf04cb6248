package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"muraqqa/internal/config"
	"muraqqa/internal/http/handlers"
	applog "muraqqa/internal/log"
	"muraqqa/internal/repos"
	"muraqqa/internal/services"
)

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	var st services.Stores
	switch cfg.Store {
	case "memory":
		st = repos.NewMemStores()
		log.Printf("[store] in-memory store with demo seed")
	default:
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		st = repos.NewSQLStores(db)
		log.Printf("[store] sqlite at %s", cfg.DBDSN)
	}

	deps := handlers.NewDeps(st, cfg)
	authSvc := deps.AuthSvc

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Catalog ----------
	app.Get("/artworks", deps.Catalog.List)
	app.Get("/artworks/:id", deps.Catalog.Detail)
	app.Get("/artists", deps.Catalog.Artists)
	app.Get("/artists/:id", deps.Catalog.Artist)

	// ---------- Cart ----------
	app.Get("/cart", deps.Cart.View)
	app.Post("/cart", deps.Cart.Add)
	app.Post("/cart/remove", deps.Cart.Remove)
	app.Post("/cart/clear", deps.Cart.Clear)

	// ---------- Favorites ----------
	app.Get("/favorites", deps.Favorites.List)
	app.Post("/favorites/:id", deps.Favorites.Save)
	app.Delete("/favorites/:id", deps.Favorites.Remove)

	// ---------- Checkout (throttled tighter than browsing) ----------
	checkoutLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.checkout.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	app.Get("/checkout/shipping", deps.Checkout.ShippingOptions)
	app.Post("/checkout/quote", deps.Checkout.Quote)
	app.Post("/checkout", checkoutLimiter, deps.Checkout.Submit)

	// ---------- Orders & payment ----------
	app.Get("/orders", handlers.RequireUser(authSvc), deps.Order.History)
	app.Get("/orders/:id", deps.Order.Get)
	app.Get("/orders/:id/invoice", deps.Order.Invoice)
	app.Post("/orders/:id/cancel", deps.Order.Cancel)
	app.Post("/orders/:id/intent", deps.Payment.CreateIntent)
	app.Post("/orders/:id/pay", checkoutLimiter, deps.Payment.ConfirmCard)
	app.Get("/orders/:id/payment", deps.Payment.Status)

	// ---------- Auth (login throttled) ----------
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
		},
	}), deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	// ---------- Admin ----------
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.Admin.ListOrders)
	admin.Post("/orders/:id/processing", deps.Admin.MarkProcessing)
	admin.Post("/orders/:id/shipped", deps.Admin.MarkShipped)
	admin.Post("/orders/:id/delivered", deps.Admin.MarkDelivered)
	admin.Post("/orders/:id/cancel", deps.Admin.Cancel)
	admin.Post("/orders/:id/bank-transfer", deps.Payment.ConfirmBankTransfer)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
