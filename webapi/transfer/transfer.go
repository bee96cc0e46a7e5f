package transfer

import (
	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/service/transfer"
	"github.com/albahri/sarraf/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// HeaderIdempotencyKey carries the client idempotency key.
const HeaderIdempotencyKey = "X-Idempotency-Key"

// Routes registers the transfer endpoint.
//
//   - POST /transfers : execute an internal transfer
func Routes(app *fiber.App, transferSvc *transfer.Service) {
	app.Post("/transfers", Create(transferSvc))
}

// Create returns the handler executing an internal transfer. The write is
// atomic: either every movement of the transfer is persisted or none is.
func Create(svc *transfer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransferRequest](c)
		if input == nil {
			return err
		}
		key := c.Get(HeaderIdempotencyKey)
		if key == "" {
			key = input.IdempotencyKey
		}
		result, err := svc.Execute(c.Context(), transfer.Request{
			FromCustomerID:      input.FromCustomerID,
			ToCustomerID:        input.ToCustomerID,
			Amount:              input.Amount,
			Currency:            currency.Code(input.Currency),
			Commission:          input.Commission,
			CommissionRecipient: input.CommissionRecipient,
			SenderName:          input.SenderName,
			BeneficiaryName:     input.BeneficiaryName,
			Notes:               input.Notes,
			IdempotencyKey:      key,
		})
		if err != nil {
			log.Errorf("Failed to execute transfer: %v", err)
			return common.ProblemJSON(c, "Failed to execute transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer executed", fiber.Map{
			"transfer_number": result.TransferNumber,
			"direction":       result.Direction,
			"movement_ids":    result.MovementIDs(),
			"movements":       common.FromMovements(result.Movements),
		})
	}
}
