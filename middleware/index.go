package middleware

import (
	"errors"
	"os"
	"strings"

	"cinema_tickets/constants"
	"cinema_tickets/helper"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			// check header Authorization: Bearer xxx
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// AdminRequired gates catalog mutations on the stored admin flag and puts
// the resolved user in Locals for the handler.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := helper.GetCurrentUser(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}
		if !user.IsAdmin {
			return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"), constants.KEY_FORBIDDEN)
		}
		c.Locals("currentUser", user)
		return c.Next()
	}
}
