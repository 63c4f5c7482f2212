package handler_test

import (
	"fmt"
	"strings"
	"testing"

	"cinema_tickets/database"
	"cinema_tickets/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyCart(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	auth := bearerFor(t, user)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/cart/", nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/checkout", nil, auth)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "empty_cart", body["keyError"])

	// The cart is untouched and still open.
	var cart model.Cart
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&cart).Error)
	assert.Equal(t, "OPEN", cart.Status)
}

func TestCheckoutFlow(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	auth := bearerFor(t, user)
	food, session := createTestCatalog(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/cart/food", fiber.Map{
		"foodItemId": food.ID,
		"quantity":   2,
	}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/seats", fiber.Map{
		"sessionId": session.ID,
		"seatLabel": "B4",
	}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/checkout", nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	receipt := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "CHECKED_OUT", receipt["status"])
	assert.True(t, strings.HasPrefix(receipt["publicCode"].(string), "RCP-"))
	assert.NotNil(t, receipt["checkedOutAt"])
	assert.InDelta(t, 29.00, receipt["total"].(float64), 0.001)

	// Checking out again with nothing pending is rejected before any
	// second receipt exists.
	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/checkout", nil, auth)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var checkedOut int64
	database.DB.Model(&model.Cart{}).
		Where("user_id = ? AND status = ?", user.ID, "CHECKED_OUT").Count(&checkedOut)
	assert.EqualValues(t, 1, checkedOut)

	// The sold seat stays sold after checkout.
	other := createTestUser(t, "Bruno", "bruno@example.com", "other-pass", false)
	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/seats", fiber.Map{
		"sessionId": session.ID,
		"seatLabel": "B4",
	}, bearerFor(t, other))
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCheckedOutCartRejectsMutation(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	auth := bearerFor(t, user)
	food, session := createTestCatalog(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/cart/food", fiber.Map{
		"foodItemId": food.ID,
		"quantity":   1,
	}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart := decodeBody(t, resp)["data"].(map[string]interface{})
	lineId := cart["foodLines"].([]interface{})[0].(map[string]interface{})["id"].(float64)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/seats", fiber.Map{
		"sessionId": session.ID,
		"seatLabel": "C2",
	}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/checkout", nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Lines of the finalized cart are frozen.
	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/v1/cart/food/%.0f", lineId), nil, auth)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "cart_closed", body["keyError"])

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/v1/cart/seats/%d", session.ID), fiber.Map{
		"seatLabel": "C2",
	}, auth)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "cart_closed", body["keyError"])

	// A later purchase starts from a fresh empty cart.
	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/cart/", nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	fresh := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "OPEN", fresh["status"])
	assert.EqualValues(t, 0, fresh["total"])
}

func TestReceipts(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	auth := bearerFor(t, user)
	food, _ := createTestCatalog(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/cart/food", fiber.Map{
		"foodItemId": food.ID,
		"quantity":   1,
	}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/cart/checkout", nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	code := decodeBody(t, resp)["data"].(map[string]interface{})["publicCode"].(string)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/receipt/", nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	receipts := decodeBody(t, resp)["data"].([]interface{})
	require.Len(t, receipts, 1)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/receipt/"+code, nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["qrCode"].(string), "data:image/png;base64,"))

	// Another user cannot read someone else's receipt.
	other := createTestUser(t, "Bruno", "bruno@example.com", "other-pass", false)
	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/receipt/"+code, nil, bearerFor(t, other))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "not_found", body["keyError"])
}
