package validate

import (
	"strconv"

	"cinema_tickets/constants"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateFoodItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateFoodItemInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputCreateFoodItem", input)
		return c.Next()
	}
}

func EditFoodItem(foodIdKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		foodId, err := strconv.ParseUint(c.Params(foodIdKey), 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.EditFoodItemInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("foodItemId", uint(foodId))
		c.Locals("inputEditFoodItem", input)
		return c.Next()
	}
}
