package handler

import (
	"encoding/base64"
	"errors"
	"fmt"

	"cinema_tickets/config"
	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/helper"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errEmptyCart = errors.New("cart has no lines")

// Checkout finalizes the caller's open cart. The cart flips to
// CHECKED_OUT exactly once with a receipt code; a cart with no lines is
// rejected before any state changes.
func Checkout(c *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}
	db := database.DB

	var cartId uint
	err = db.Transaction(func(tx *gorm.DB) error {
		cart, err := helper.GetOpenCart(tx, user.ID)
		if err != nil {
			return err
		}
		cartId = cart.ID

		lineCount, err := helper.CountCartLines(tx, cart.ID)
		if err != nil {
			return err
		}
		if lineCount == 0 {
			return errEmptyCart
		}

		if _, err := helper.RecomputeCartTotal(tx, cart.ID); err != nil {
			return err
		}

		_, err = helper.FinalizeCart(tx, cart.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.CART_NOT_FOUND, err, constants.KEY_NOT_FOUND)
		}
		if errors.Is(err, errEmptyCart) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.CART_EMPTY, err, constants.KEY_EMPTY_CART)
		}
		if errors.Is(err, helper.ErrCartClosed) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.CART_CLOSED, err, constants.KEY_CART_CLOSED)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	receipt, err := loadCartView(db, cartId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendReceiptEmail(user.Email, buildReceiptData(user, receipt))

	return utils.SuccessResponse(c, fiber.StatusOK, receipt)
}

// GetReceipts lists the caller's checked-out carts, newest first.
func GetReceipts(c *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}

	var receipts model.Carts
	if err := database.DB.
		Preload("FoodLines").
		Preload("FoodLines.FoodItem").
		Preload("SessionLines").
		Preload("SessionLines.Session").
		Preload("SessionLines.Session.Movie").
		Where("user_id = ? AND status = ?", user.ID, constants.CART_STATUS_CHECKED_OUT).
		Order("checked_out_at DESC").
		Find(&receipts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, receipts)
}

// GetReceiptByCode fetches one checked-out cart by its receipt code,
// with a QR image of the code for gate scanning.
func GetReceiptByCode(c *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}
	code := c.Params("code")

	var receipt model.Cart
	query := database.DB.
		Preload("FoodLines").
		Preload("FoodLines.FoodItem").
		Preload("SessionLines").
		Preload("SessionLines.Session").
		Preload("SessionLines.Session.Movie").
		Where("public_code = ? AND status = ?", code, constants.CART_STATUS_CHECKED_OUT)
	if !user.IsAdmin {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&receipt).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.RECEIPT_NOT_FOUND, err, constants.KEY_NOT_FOUND)
	}

	qrPng, err := utils.GenerateQRCode(receipt.PublicCode, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"receipt": receipt,
		"qrCode":  "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPng),
	})
}

func buildReceiptData(user *model.User, cart *model.Cart) model.ReceiptData {
	data := model.ReceiptData{
		ReceiptCode: cart.PublicCode,
		Name:        user.Name,
		Total:       cart.Total,
		DetailLink:  config.Config("CLIENT_URL") + "/receipts/" + cart.PublicCode,
	}
	for _, line := range cart.SessionLines {
		data.Lines = append(data.Lines, model.ReceiptLine{
			Description: fmt.Sprintf("%s (seat %s)", line.Session.Movie.Title, line.SeatLabel),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	for _, line := range cart.FoodLines {
		data.Lines = append(data.Lines, model.ReceiptLine{
			Description: line.FoodItem.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return data
}
