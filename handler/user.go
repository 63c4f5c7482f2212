package handler

import (
	"errors"
	"strings"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/helper"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func RegisterUser(c *fiber.Ctx) error {
	db := database.DB

	userInput, ok := c.Locals("inputRegisterUser").(model.RegisterUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	existing, err := helper.GetUserByEmail(userInput.Email)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err, "general")
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_ALREADY_EXISTS, nil, constants.KEY_DUPLICATE_EMAIL)
	}

	hash, err := helper.HashPassword(userInput.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err, "password")
	}

	birthDate, err := utils.ParseDate(userInput.BirthDate)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_DATE_FORMAT, err, constants.KEY_INVALID_FORMAT)
	}

	newUser := new(model.User)
	copier.Copy(&newUser, &userInput)
	newUser.Password = hash
	newUser.BirthDate = birthDate
	newUser.IsAdmin = helper.IsAdminEmail(userInput.Email)

	if err := db.Create(&newUser).Error; err != nil {
		// The unique index is the source of truth; the pre-check only
		// covers the common case.
		if helper.IsUniqueViolation(err) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_ALREADY_EXISTS, nil, constants.KEY_DUPLICATE_EMAIL)
		}
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err, "general")
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	return utils.SuccessResponse(c, fiber.StatusCreated, newUser)
}

func Me(c *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func GetUsers(c *fiber.Ctx) error {
	filterInput := new(model.FilterUser)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.User{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", key, key)
	}
	if filterInput.IsAdmin != nil {
		condition = condition.Where("is_admin = ?", filterInput.IsAdmin)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var users model.Users
	condition.Order("id ASC").Find(&users)
	response := &model.ResponseCustom{
		Rows:       users,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func UpdateUser(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputUpdateUser").(model.UpdateUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	user, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_FOUND_RECORDS, err)
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, constants.WRONG_PASSWORD, errors.New("current password does not match"), constants.KEY_WRONG_PASSWORD)
	}

	updateMap := map[string]interface{}{}

	if input.Name != nil {
		updateMap["name"] = *input.Name
	}

	if input.Email != nil && *input.Email != user.Email {
		var count int64
		db.Model(&model.User{}).Where("email = ? AND id != ?", *input.Email, user.ID).Count(&count)
		if count > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_ALREADY_EXISTS, nil, constants.KEY_DUPLICATE_EMAIL)
		}
		updateMap["email"] = *input.Email
	}

	if input.BirthDate != nil {
		birthDate, err := utils.ParseDate(*input.BirthDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_DATE_FORMAT, err, constants.KEY_INVALID_FORMAT)
		}
		updateMap["birth_date"] = birthDate
	}

	if input.NewPassword != nil {
		hash, err := helper.HashPassword(*input.NewPassword)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
		}
		updateMap["password"] = hash
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, user)
	}

	if err := db.Model(&user).Updates(updateMap).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_ALREADY_EXISTS, nil, constants.KEY_DUPLICATE_EMAIL)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.First(&user, user.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// DeleteUser is self-service account deletion. The confirming email must
// resolve to the authenticated user and the password must match; both
// checks run before anything is removed.
func DeleteUser(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputDeleteUser").(model.DeleteUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	currentUser, err := helper.GetCurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_FOUND_RECORDS, err)
	}

	target, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if target == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New("email not registered"), constants.KEY_NOT_FOUND)
	}

	if target.ID != currentUser.ID {
		return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, constants.FORBIDDEN_OTHER_USER, errors.New("identity mismatch"), constants.KEY_FORBIDDEN)
	}

	if !helper.CheckPasswordHash(input.Password, target.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, constants.WRONG_PASSWORD, errors.New("password does not match"), constants.KEY_WRONG_PASSWORD)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var carts []model.Cart
		if err := tx.Where("user_id = ?", target.ID).Find(&carts).Error; err != nil {
			return err
		}
		for _, cart := range carts {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.SeatPurchase{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.SessionLine{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.FoodLine{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", target.ID).Delete(&model.Cart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, target.ID).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": target.Email})
}
