package validate

import (
	"time"

	"cinema_tickets/constants"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterUserInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if _, err := time.Parse("2006-01-02", input.BirthDate); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_DATE_FORMAT, err, constants.KEY_INVALID_FORMAT)
		}

		c.Locals("inputRegisterUser", input)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateUserInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.BirthDate != nil {
			if _, err := time.Parse("2006-01-02", *input.BirthDate); err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_DATE_FORMAT, err, constants.KEY_INVALID_FORMAT)
			}
		}

		c.Locals("inputUpdateUser", input)
		return c.Next()
	}
}

func DeleteUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.DeleteUserInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputDeleteUser", input)
		return c.Next()
	}
}
