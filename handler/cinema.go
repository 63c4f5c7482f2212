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

func GetCinemas(c *fiber.Ctx) error {
	filterInput := new(model.FilterCinema)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Cinema{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", key, key)
	}
	if filterInput.Name != "" {
		condition = condition.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filterInput.Name)+"%")
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var cinemas model.Cinemas
	condition.Order("id ASC").Find(&cinemas)
	response := &model.ResponseCustom{
		Rows:       cinemas,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetCinemaById(c *fiber.Ctx) error {
	cinemaId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse cinemaId fail"))
	}

	var cinema model.Cinema
	if err := database.DB.Preload("Rooms").First(&cinema, cinemaId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cinema)
}

// SearchCinemas returns the candidate set for a name lookup; callers
// pick an id from the result before mutating anything.
func SearchCinemas(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("name query is required"))
	}

	var cinemas model.Cinemas
	if err := database.DB.
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("id ASC").
		Find(&cinemas).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"candidates": cinemas,
		"ambiguous":  len(cinemas) > 1,
	})
}

func CreateCinema(c *fiber.Ctx) error {
	db := database.DB
	cinemaInput, ok := c.Locals("inputCreateCinema").(model.CreateCinemaInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newCinema := new(model.Cinema)
	copier.Copy(&newCinema, &cinemaInput)
	newCinema.Slug = helper.GenerateUniqueCinemaSlug(db, cinemaInput.Name)

	if err := db.Create(&newCinema).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newCinema)
}

func EditCinema(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputEditCinema").(model.EditCinemaInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	cinemaId, ok := c.Locals("cinemaId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse cinemaId fail"))
	}

	var cinema model.Cinema
	if err := db.First(&cinema, cinemaId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	updateMap := map[string]interface{}{}
	if input.Name != nil && *input.Name != cinema.Name {
		updateMap["name"] = *input.Name
		updateMap["slug"] = helper.GenerateUniqueCinemaSlug(db, *input.Name)
	}
	if input.Location != nil {
		updateMap["location"] = *input.Location
	}
	if input.Capacity != nil {
		updateMap["capacity"] = *input.Capacity
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, cinema)
	}

	if err := db.Model(&cinema).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.First(&cinema, cinemaId)

	return utils.SuccessResponse(c, fiber.StatusOK, cinema)
}

func DeleteCinema(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputDeleteCinema").(model.DeleteCinemaInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	admin, ok := c.Locals("currentUser").(*model.User)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("no current user"))
	}
	if !helper.CheckPasswordHash(input.Password, admin.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, constants.WRONG_PASSWORD, errors.New("admin password does not match"), constants.KEY_WRONG_PASSWORD)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var roomIds []uint
		if err := tx.Model(&model.Room{}).Where("cinema_id IN ?", input.IDs).Pluck("id", &roomIds).Error; err != nil {
			return err
		}
		if len(roomIds) > 0 {
			if err := tx.Where("room_id IN ?", roomIds).Delete(&model.Session{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Room{}, roomIds).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Cinema{}, input.IDs).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}
