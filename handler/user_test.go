package handler_test

import (
	"testing"

	"cinema_tickets/database"
	"cinema_tickets/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", fiber.Map{
		"name":      "Ana",
		"email":     "ana@example.com",
		"password":  "secret-pass",
		"birthDate": "1995-06-01",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "wrong-pass",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "secret-pass",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var hasAccessCookie bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "access_token" && cookie.Value != "" {
			hasAccessCookie = true
		}
	}
	assert.True(t, hasAccessCookie)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", fiber.Map{
		"name":      "Other Ana",
		"email":     "ana@example.com",
		"password":  "another-pass",
		"birthDate": "1990-01-15",
	}, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "duplicate_email", body["keyError"])

	var count int64
	database.DB.Model(&model.User{}).Where("email = ?", "ana@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterInvalidBirthDate(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", fiber.Map{
		"name":      "Ana",
		"email":     "ana@example.com",
		"password":  "secret-pass",
		"birthDate": "06/01/1995",
	}, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "invalid_format", body["keyError"])
}

func TestUpdateUserWrongCurrentPassword(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)

	resp := doJSON(t, app, fiber.MethodPut, "/api/v1/user/", fiber.Map{
		"name":            "Ana Maria",
		"currentPassword": "not-the-password",
	}, bearerFor(t, user))
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "wrong_password", body["keyError"])

	var fresh model.User
	database.DB.First(&fresh, user.ID)
	assert.Equal(t, "Ana", fresh.Name)
}

func TestDeleteUserWrongPassword(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/v1/user/", fiber.Map{
		"email":    "ana@example.com",
		"password": "not-the-password",
	}, bearerFor(t, user))
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "wrong_password", body["keyError"])

	// The account survives the failed confirmation.
	var count int64
	database.DB.Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteUserIdentityMismatch(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	createTestUser(t, "Bruno", "bruno@example.com", "other-pass", false)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/v1/user/", fiber.Map{
		"email":    "bruno@example.com",
		"password": "secret-pass",
	}, bearerFor(t, user))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "forbidden", body["keyError"])

	var count int64
	database.DB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestGetUsersRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	admin := createTestUser(t, "Root", "root@example.com", "admin-pass", true)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/user/", nil, bearerFor(t, user))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/user/", nil, bearerFor(t, admin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["totalCount"])
}
