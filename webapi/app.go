// Package webapi assembles the HTTP surface of the exchange-shop ledger.
package webapi

import (
	"github.com/albahri/sarraf/pkg/config"
	"github.com/albahri/sarraf/pkg/provider/exchange"
	customersvc "github.com/albahri/sarraf/pkg/service/customer"
	movementsvc "github.com/albahri/sarraf/pkg/service/movement"
	statementsvc "github.com/albahri/sarraf/pkg/service/statement"
	transfersvc "github.com/albahri/sarraf/pkg/service/transfer"
	"github.com/albahri/sarraf/webapi/common"
	"github.com/albahri/sarraf/webapi/customer"
	"github.com/albahri/sarraf/webapi/movement"
	"github.com/albahri/sarraf/webapi/rates"
	"github.com/albahri/sarraf/webapi/report"
	"github.com/albahri/sarraf/webapi/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps are the services the HTTP layer is wired to.
type Deps struct {
	Customers  *customersvc.Service
	Movements  *movementsvc.Service
	Transfers  *transfersvc.Service
	Statements *statementsvc.Service
	Rates      exchange.RateSource
}

// NewApp builds the fiber application with all routes and middleware
// registered.
func NewApp(cfg *config.App, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "sarraf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, utils.StatusMessage(status), err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	registry := prometheus.NewRegistry()
	app.Use(newHTTPMetrics(registry).middleware())
	app.Get("/metrics", metricsHandler(registry))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Sarraf ledger is up")
	})

	customer.Routes(app, deps.Customers, deps.Statements)
	movement.Routes(app, deps.Movements)
	transfer.Routes(app, deps.Transfers)
	report.Routes(app, deps.Statements)
	rates.Routes(app, deps.Rates)

	return app
}
