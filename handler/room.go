package handler

import (
	"errors"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetRooms(c *fiber.Ctx) error {
	filterInput := new(model.FilterRoom)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Room{})
	if filterInput.CinemaId != 0 {
		condition = condition.Where("cinema_id = ?", filterInput.CinemaId)
	}
	if filterInput.Number != "" {
		condition = condition.Where("number = ?", filterInput.Number)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var rooms model.Rooms
	condition.Preload("Cinema").Order("id ASC").Find(&rooms)
	response := &model.ResponseCustom{
		Rows:       rooms,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetRoomById(c *fiber.Ctx) error {
	roomId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse roomId fail"))
	}

	var room model.Room
	if err := database.DB.Preload("Cinema").First(&room, roomId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

// SearchRooms looks rooms up by number within a cinema and returns every
// candidate; mutation endpoints take ids.
func SearchRooms(c *fiber.Ctx) error {
	number := c.Query("number")
	if number == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("number query is required"))
	}

	condition := database.DB.Where("number = ?", number)
	if cinemaId := c.QueryInt("cinemaId"); cinemaId > 0 {
		condition = condition.Where("cinema_id = ?", cinemaId)
	}

	var rooms model.Rooms
	if err := condition.Preload("Cinema").Order("id ASC").Find(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"candidates": rooms,
		"ambiguous":  len(rooms) > 1,
	})
}

func CreateRoom(c *fiber.Ctx) error {
	db := database.DB
	roomInput, ok := c.Locals("inputCreateRoom").(model.CreateRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var cinema model.Cinema
	if err := db.First(&cinema, roomInput.CinemaId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	newRoom := new(model.Room)
	copier.Copy(&newRoom, &roomInput)

	if err := db.Create(&newRoom).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	db.Preload("Cinema").First(&newRoom, newRoom.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, newRoom)
}

func EditRoom(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputEditRoom").(model.EditRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	roomId, ok := c.Locals("roomId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse roomId fail"))
	}

	var room model.Room
	if err := db.First(&room, roomId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	updateMap := map[string]interface{}{}
	if input.Number != nil {
		updateMap["number"] = *input.Number
	}
	if input.Capacity != nil {
		updateMap["capacity"] = *input.Capacity
	}
	if input.CinemaId != nil {
		var cinema model.Cinema
		if err := db.First(&cinema, *input.CinemaId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
		}
		updateMap["cinema_id"] = *input.CinemaId
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, room)
	}

	if err := db.Model(&room).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.Preload("Cinema").First(&room, roomId)

	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

func DeleteRoom(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id IN ?", input.IDs).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Room{}, input.IDs).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}
