package customer

import (
	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/service/customer"
	"github.com/albahri/sarraf/pkg/service/statement"
	"github.com/albahri/sarraf/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers customer CRUD plus the customer-scoped ledger views.
//
//   - POST   /customers                 : register a customer
//   - GET    /customers                 : list customers
//   - GET    /customers/:id             : fetch one customer
//   - PUT    /customers/:id             : edit a customer
//   - DELETE /customers/:id             : remove a customer
//   - GET    /customers/:id/movements   : list the customer's movements
//   - GET    /customers/:id/balance     : current balance in one currency
//   - GET    /customers/:id/statement   : running-balance statement
func Routes(app *fiber.App, customerSvc *customer.Service, statementSvc *statement.Service) {
	app.Post("/customers", Create(customerSvc))
	app.Get("/customers", List(customerSvc))
	app.Get("/customers/:id", Get(customerSvc))
	app.Put("/customers/:id", Update(customerSvc))
	app.Delete("/customers/:id", Delete(customerSvc))
	app.Get("/customers/:id/movements", Movements(statementSvc))
	app.Get("/customers/:id/balance", Balance(statementSvc))
	app.Get("/customers/:id/statement", Statement(statementSvc))
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "customer ID must be a valid UUID")
	}
	return id, nil
}

func parseCurrency(c *fiber.Ctx) (currency.Code, error) {
	code := currency.Code(c.Query("currency"))
	if code == "" || !currency.IsSupported(code) {
		return "", fiber.NewError(fiber.StatusBadRequest, "query parameter 'currency' must be a supported currency code")
	}
	return code, nil
}

// Create returns the handler registering a new customer.
func Create(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCustomerRequest](c)
		if input == nil {
			return err
		}
		created, err := svc.Create(c.Context(), customer.CreateRequest{
			Name:          input.Name,
			Phone:         input.Phone,
			AccountNumber: input.AccountNumber,
		})
		if err != nil {
			log.Errorf("Failed to create customer: %v", err)
			return common.ProblemJSON(c, "Failed to create customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Customer created", common.FromCustomer(created))
	}
}

// List returns the handler listing all customers.
func List(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customers, err := svc.List(c.Context())
		if err != nil {
			return common.ProblemJSON(c, "Failed to list customers", err)
		}
		out := make([]common.CustomerResponse, 0, len(customers))
		for _, cust := range customers {
			out = append(out, common.FromCustomer(cust))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customers", out)
	}
}

// Get returns the handler fetching one customer.
func Get(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		cust, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemJSON(c, "Failed to fetch customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer", common.FromCustomer(cust))
	}
}

// Update returns the handler editing a customer.
func Update(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[UpdateCustomerRequest](c)
		if input == nil {
			return err
		}
		updated, err := svc.Update(c.Context(), id, customer.UpdateRequest{
			Name:          input.Name,
			Phone:         input.Phone,
			AccountNumber: input.AccountNumber,
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to update customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer updated", common.FromCustomer(updated))
	}
}

// Delete returns the handler removing a customer.
func Delete(svc *customer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), id); err != nil {
			return common.ProblemJSON(c, "Failed to delete customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer deleted", nil)
	}
}

// Movements returns the handler listing a customer's movements, optionally
// narrowed to one currency.
func Movements(svc *statement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		code := currency.Code(c.Query("currency"))
		movements, err := svc.ListMovements(c.Context(), id, code)
		if err != nil {
			return common.ProblemJSON(c, "Failed to list movements", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Movements", common.FromMovements(movements))
	}
}

// Balance returns the handler computing the customer's current balance in
// one currency. The balance is recomputed from movements on every call.
func Balance(svc *statement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		code, err := parseCurrency(c)
		if err != nil {
			return err
		}
		balance, err := svc.CurrentBalance(c.Context(), id, code)
		if err != nil {
			return common.ProblemJSON(c, "Failed to compute balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance", fiber.Map{
			"customer_id": id,
			"currency":    code,
			"balance":     balance.AmountFloat(),
			"label":       statement.BalanceLabel(balance),
		})
	}
}

// Statement returns the handler producing the running-balance statement.
func Statement(svc *statement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		code, err := parseCurrency(c)
		if err != nil {
			return err
		}
		lines, err := svc.RunningBalanceSeries(c.Context(), id, code)
		if err != nil {
			return common.ProblemJSON(c, "Failed to build statement", err)
		}
		out := make([]fiber.Map, 0, len(lines))
		for _, line := range lines {
			out = append(out, fiber.Map{
				"movement":      common.FromMovement(line.Movement),
				"combined":      line.Combined.AmountFloat(),
				"balance_after": line.Balance.AmountFloat(),
				"label":         statement.BalanceLabel(line.Balance),
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement", out)
	}
}
