package validate

import (
	"strconv"

	"cinema_tickets/constants"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateCinema() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCinemaInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputCreateCinema", input)
		return c.Next()
	}
}

func EditCinema(cinemaIdKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cinemaId, err := strconv.ParseUint(c.Params(cinemaIdKey), 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.EditCinemaInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("cinemaId", uint(cinemaId))
		c.Locals("inputEditCinema", input)
		return c.Next()
	}
}

func DeleteCinema() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.DeleteCinemaInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if len(input.IDs) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Delete id list cannot be empty"})
		}

		c.Locals("inputDeleteCinema", input)
		return c.Next()
	}
}
