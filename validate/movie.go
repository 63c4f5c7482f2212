package validate

import (
	"strconv"

	"cinema_tickets/constants"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateMovieInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputCreateMovie", input)
		return c.Next()
	}
}

func EditMovie(movieIdKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movieId, err := strconv.ParseUint(c.Params(movieIdKey), 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.EditMovieInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("movieId", uint(movieId))
		c.Locals("inputEditMovie", input)
		return c.Next()
	}
}

// DeleteMovie keeps the explicit password confirmation on the
// destructive path in addition to the admin role gate.
func DeleteMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.DeleteMovieInput

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

		c.Locals("inputDeleteMovie", input)
		return c.Next()
	}
}

func UploadPoster(movieIdKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movieId, err := strconv.ParseUint(c.Params(movieIdKey), 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		poster, err := c.FormFile("poster")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Poster file is required", err)
		}

		c.Locals("movieId", uint(movieId))
		c.Locals("posterFile", poster)
		return c.Next()
	}
}
