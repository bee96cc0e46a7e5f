// Package report exposes the shop-wide aggregate views: debt summary, cash
// flow and the shop's own position.
package report

import (
	"time"

	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/albahri/sarraf/pkg/service/statement"
	"github.com/albahri/sarraf/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the report endpoints.
//
//   - GET /reports/debts    : per-currency totals owed to and by the shop
//   - GET /reports/cashflow : period cash flow (query: from, to, RFC 3339)
//   - GET /reports/position : the shop's residual position per currency
func Routes(app *fiber.App, statementSvc *statement.Service) {
	app.Get("/reports/debts", Debts(statementSvc))
	app.Get("/reports/cashflow", CashFlow(statementSvc))
	app.Get("/reports/position", Position(statementSvc))
}

// Debts returns the handler computing the shop-wide debt summary.
func Debts(svc *statement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.DebtSummary(c.Context())
		if err != nil {
			return common.ProblemJSON(c, "Failed to compute debt summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Debt summary", fiber.Map{
			"owed_to_shop": moneyMap(summary.OwedToShop),
			"owed_by_shop": moneyMap(summary.OwedByShop),
		})
	}
}

// CashFlow returns the handler summing a period's cash flow per currency.
// The period bounds come from the from/to query parameters in RFC 3339; a
// missing from defaults to the beginning of time, a missing to defaults to
// now.
func CashFlow(svc *statement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := parseTime(c.Query("from"), time.Time{})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "query parameter 'from' must be RFC 3339")
		}
		to, err := parseTime(c.Query("to"), time.Now().UTC())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "query parameter 'to' must be RFC 3339")
		}
		flows, err := svc.CashFlow(c.Context(), from, to)
		if err != nil {
			return common.ProblemJSON(c, "Failed to compute cash flow", err)
		}
		out := make(map[string]fiber.Map, len(flows))
		for code, totals := range flows {
			out[code.String()] = fiber.Map{
				"total_received": totals.TotalReceived.AmountFloat(),
				"total_paid":     totals.TotalPaid.AmountFloat(),
				"net_flow":       totals.NetFlow.AmountFloat(),
			}
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cash flow", fiber.Map{
			"from":       from,
			"to":         to,
			"currencies": out,
		})
	}
}

// Position returns the handler deriving the shop's per-currency position as
// the complement of all customer balances.
func Position(svc *statement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		position, err := svc.ShopPosition(c.Context())
		if err != nil {
			return common.ProblemJSON(c, "Failed to compute shop position", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Shop position", moneyMapWithLabel(position))
	}
}

func parseTime(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func moneyMap(in map[currency.Code]money.Money) map[string]float64 {
	out := make(map[string]float64, len(in))
	for code, amt := range in {
		out[code.String()] = amt.AmountFloat()
	}
	return out
}

func moneyMapWithLabel(in map[currency.Code]money.Money) map[string]fiber.Map {
	out := make(map[string]fiber.Map, len(in))
	for code, amt := range in {
		out[code.String()] = fiber.Map{
			"amount": amt.AmountFloat(),
			"label":  statement.BalanceLabel(amt),
		}
	}
	return out
}
