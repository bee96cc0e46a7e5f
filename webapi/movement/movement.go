package movement

import (
	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/service/movement"
	"github.com/albahri/sarraf/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers movement recording and correction endpoints.
//
//   - POST   /movements     : record a movement
//   - PUT    /movements/:id : correct a movement
//   - DELETE /movements/:id : remove a movement permanently
func Routes(app *fiber.App, movementSvc *movement.Service) {
	app.Post("/movements", Record(movementSvc))
	app.Put("/movements/:id", Update(movementSvc))
	app.Delete("/movements/:id", Delete(movementSvc))
}

// Record returns the handler recording a new movement.
func Record(svc *movement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RecordMovementRequest](c)
		if input == nil {
			return err
		}
		recorded, err := svc.Record(c.Context(), movement.RecordRequest{
			CustomerID:            input.CustomerID,
			Type:                  ledger.MovementType(input.MovementType),
			Amount:                input.Amount,
			Currency:              currency.Code(input.Currency),
			Commission:            input.Commission,
			CommissionCurrency:    currency.Code(input.CommissionCurrency),
			CommissionRecipientID: input.CommissionRecipientID,
			ReceiptNumber:         input.ReceiptNumber,
			SenderName:            input.SenderName,
			BeneficiaryName:       input.BeneficiaryName,
			Notes:                 input.Notes,
		})
		if err != nil {
			log.Errorf("Failed to record movement: %v", err)
			return common.ProblemJSON(c, "Failed to record movement", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Movement recorded", common.FromMovement(recorded))
	}
}

// Update returns the handler applying an operator correction.
func Update(svc *movement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "movement ID must be a valid UUID")
		}
		input, err := common.BindAndValidate[UpdateMovementRequest](c)
		if input == nil {
			return err
		}
		updated, err := svc.Update(c.Context(), id, movement.UpdateRequest{
			Amount:          input.Amount,
			Currency:        currency.Code(input.Currency),
			ReceiptNumber:   input.ReceiptNumber,
			SenderName:      input.SenderName,
			BeneficiaryName: input.BeneficiaryName,
			Notes:           input.Notes,
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to update movement", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Movement updated", common.FromMovement(updated))
	}
}

// Delete returns the handler removing a movement. Deletion is permanent and
// immediately changes every derived balance.
func Delete(svc *movement.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "movement ID must be a valid UUID")
		}
		if err := svc.Delete(c.Context(), id); err != nil {
			return common.ProblemJSON(c, "Failed to delete movement", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Movement deleted", nil)
	}
}
