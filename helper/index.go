package helper

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cinema_tickets/database"
	"cinema_tickets/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsUniqueViolation reports whether err came from a unique constraint.
// Postgres and sqlite (tests) word it differently.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func GetUserByEmail(e string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Email: e}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// IsAdminEmail checks the configured allow-list. Admins are assigned by
// configuration, never by a literal in application code.
func IsAdminEmail(email string) bool {
	for _, allowed := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if allowed != "" && strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = tokenClaim.UserId
	claims["email"] = tokenClaim.Email
	claims["isAdmin"] = tokenClaim.IsAdmin
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(jwtSecret())
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = tokenClaim.UserId
	claims["email"] = tokenClaim.Email
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(jwtSecret())
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})

	return token, err
}

// GetCurrentUser resolves the authenticated user from the parsed JWT in
// Locals, backed by a fresh DB read.
func GetCurrentUser(c *fiber.Ctx) (*model.User, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("no token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userIdFloat, ok := claims["userId"].(float64)
	if !ok || userIdFloat == 0 {
		return nil, errors.New("no userId in claims")
	}

	var user model.User
	if err := database.DB.First(&user, uint(userIdFloat)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
