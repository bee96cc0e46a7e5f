// Package rates exposes the currency catalog and indicative exchange rates.
// Rates are informational; no ledger write ever converts currencies.
package rates

import (
	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/provider/exchange"
	"github.com/albahri/sarraf/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Routes registers the catalog and rate endpoints.
//
//   - GET /currencies      : the supported currency catalog
//   - GET /rates/:from/:to : indicative rate for a pair (query: amount)
func Routes(app *fiber.App, source exchange.RateSource) {
	app.Get("/currencies", Currencies())
	app.Get("/rates/:from/:to", Rate(source))
}

// Currencies returns the handler listing the supported currency catalog.
func Currencies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		metas := currency.List()
		out := make([]fiber.Map, 0, len(metas))
		for _, m := range metas {
			out = append(out, fiber.Map{
				"code":        m.Code,
				"name":        m.Name,
				"arabic_name": m.ArabicName,
				"symbol":      m.Symbol,
				"decimals":    m.Decimals,
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies", out)
	}
}

// Rate returns the handler quoting the pair's rate. When an amount query
// parameter is supplied the converted amount is included.
func Rate(source exchange.RateSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := currency.Code(c.Params("from"))
		to := currency.Code(c.Params("to"))
		if !currency.IsSupported(from) || !currency.IsSupported(to) {
			return fiber.NewError(fiber.StatusBadRequest, "both currencies must be supported codes")
		}
		rate, err := source.Rate(c.Context(), from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		resp := fiber.Map{
			"from": from,
			"to":   to,
			"rate": rate.String(),
		}
		if raw := c.Query("amount"); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil || amount.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "query parameter 'amount' must be a non-negative decimal")
			}
			resp["amount"] = amount.String()
			resp["converted"] = amount.Mul(rate).String()
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate", resp)
	}
}
