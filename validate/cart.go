package validate

import (
	"cinema_tickets/constants"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
)

func AddFoodLine() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddFoodLineInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputAddFoodLine", input)
		return c.Next()
	}
}

func AddSeat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddSeatInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputAddSeat", input)
		return c.Next()
	}
}

func RemoveSeat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RemoveSeatInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputRemoveSeat", input)
		return c.Next()
	}
}
