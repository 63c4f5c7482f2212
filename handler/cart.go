package handler

import (
	"errors"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/helper"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func loadCartView(db *gorm.DB, cartId uint) (*model.Cart, error) {
	var cart model.Cart
	err := db.
		Preload("FoodLines").
		Preload("FoodLines.FoodItem").
		Preload("SessionLines").
		Preload("SessionLines.Session").
		Preload("SessionLines.Session.Movie").
		First(&cart, cartId).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart returns the caller's open cart, creating an empty one on first
// view. Repeat calls always land on the same cart row.
func GetCart(c *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}

	cart, err := helper.GetOrCreateCart(database.DB, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	view, err := loadCartView(database.DB, cart.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}

func AddFoodLine(c *fiber.Ctx) error {
	input, ok := c.Locals("inputAddFoodLine").(model.AddFoodLineInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}
	db := database.DB

	var item model.FoodItem
	if err := db.First(&item, input.FoodItemId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	var cartId uint
	err = db.Transaction(func(tx *gorm.DB) error {
		cart, err := helper.GetOrCreateCart(tx, user.ID)
		if err != nil {
			return err
		}
		if err := helper.EnsureOpen(cart); err != nil {
			return err
		}
		cartId = cart.ID

		// Adding the same item again appends another line; each line
		// keeps the price it was added at.
		line := model.FoodLine{
			CartId:     cart.ID,
			FoodItemId: item.ID,
			Quantity:   input.Quantity,
			UnitPrice:  item.Price,
			Subtotal:   utils.Round2(float64(input.Quantity) * item.Price),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		_, err = helper.RecomputeCartTotal(tx, cart.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, helper.ErrCartClosed) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.CART_CLOSED, err, constants.KEY_CART_CLOSED)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	view, err := loadCartView(db, cartId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}

func RemoveFoodLine(c *fiber.Ctx) error {
	lineId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse lineId fail"))
	}
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}
	db := database.DB

	var cartId uint
	err = db.Transaction(func(tx *gorm.DB) error {
		var line model.FoodLine
		if err := tx.Preload("Cart").First(&line, lineId).Error; err != nil {
			return err
		}
		if line.Cart.UserId != user.ID {
			return gorm.ErrRecordNotFound
		}
		if err := helper.EnsureOpen(&line.Cart); err != nil {
			return err
		}
		cartId = line.CartId

		if err := tx.Delete(&model.FoodLine{}, line.ID).Error; err != nil {
			return err
		}

		_, err = helper.RecomputeCartTotal(tx, line.CartId)
		return err
	})
	if err != nil {
		if errors.Is(err, helper.ErrCartClosed) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.CART_CLOSED, err, constants.KEY_CART_CLOSED)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.LINE_NOT_IN_CART, err, constants.KEY_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	view, err := loadCartView(db, cartId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}

// AddSeat claims one seat of a session for the caller's cart. The claim
// is committed with the cart line in one transaction; losing the race on
// the unique (session, seat) index maps to a conflict response.
func AddSeat(c *fiber.Ctx) error {
	input, ok := c.Locals("inputAddSeat").(model.AddSeatInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}
	db := database.DB

	var session model.Session
	if err := db.First(&session, input.SessionId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	var cartId uint
	err = db.Transaction(func(tx *gorm.DB) error {
		cart, err := helper.GetOrCreateCart(tx, user.ID)
		if err != nil {
			return err
		}
		if err := helper.EnsureOpen(cart); err != nil {
			return err
		}
		cartId = cart.ID

		purchase := model.SeatPurchase{
			SessionId: session.ID,
			SeatLabel: input.SeatLabel,
			CartId:    cart.ID,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		line := model.SessionLine{
			CartId:    cart.ID,
			SessionId: session.ID,
			SeatLabel: input.SeatLabel,
			Quantity:  1,
			UnitPrice: session.Price,
			Subtotal:  utils.Round2(session.Price),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		_, err = helper.RecomputeCartTotal(tx, cart.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, helper.ErrCartClosed) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.CART_CLOSED, err, constants.KEY_CART_CLOSED)
		}
		if helper.IsUniqueViolation(err) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.SEAT_ALREADY_SOLD, err, constants.KEY_SEAT_TAKEN)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	BroadcastSeatUpdate(session.ID, input.SeatLabel, true)

	view, err := loadCartView(db, cartId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}

// RemoveSeat drops a seat from the caller's open cart and frees the
// claim. A seat the cart never held is a not-found, not a silent no-op.
func RemoveSeat(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRemoveSeat").(model.RemoveSeatInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	sessionId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse sessionId fail"))
	}
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	}
	db := database.DB

	var cartId uint
	err = db.Transaction(func(tx *gorm.DB) error {
		var line model.SessionLine
		if err := tx.Preload("Cart").
			Joins("JOIN carts ON carts.id = session_lines.cart_id").
			Where("carts.user_id = ? AND session_lines.session_id = ? AND session_lines.seat_label = ?",
				user.ID, sessionId, input.SeatLabel).
			First(&line).Error; err != nil {
			return err
		}
		if err := helper.EnsureOpen(&line.Cart); err != nil {
			return err
		}
		cartId = line.CartId
		if err := tx.Delete(&model.SessionLine{}, line.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ? AND session_id = ? AND seat_label = ?",
			line.CartId, sessionId, input.SeatLabel).Delete(&model.SeatPurchase{}).Error; err != nil {
			return err
		}

		_, err = helper.RecomputeCartTotal(tx, line.CartId)
		return err
	})
	if err != nil {
		if errors.Is(err, helper.ErrCartClosed) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.CART_CLOSED, err, constants.KEY_CART_CLOSED)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.SEAT_NOT_IN_CART, err, constants.KEY_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	BroadcastSeatUpdate(uint(sessionId), input.SeatLabel, false)

	view, err := loadCartView(db, cartId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}
