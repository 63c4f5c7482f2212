package handler

import (
	"errors"
	"time"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetSessions(c *fiber.Ctx) error {
	filterInput := new(model.FilterSessionInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Session{})
	if filterInput.MovieId != 0 {
		condition = condition.Where("movie_id = ?", filterInput.MovieId)
	}
	if filterInput.RoomId != 0 {
		condition = condition.Where("room_id = ?", filterInput.RoomId)
	}
	if filterInput.CinemaId != 0 {
		condition = condition.Where("room_id IN (?)",
			db.Model(&model.Room{}).Select("id").Where("cinema_id = ?", filterInput.CinemaId))
	}
	if filterInput.StartDate != "" {
		start, err := utils.ParseDate(filterInput.StartDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_DATE_FORMAT, err, constants.KEY_INVALID_FORMAT)
		}
		condition = condition.Where("start_time >= ?", start)
	}
	if filterInput.EndDate != "" {
		end, err := utils.ParseDate(filterInput.EndDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_DATE_FORMAT, err, constants.KEY_INVALID_FORMAT)
		}
		condition = condition.Where("start_time < ?", end.Add(24*time.Hour))
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var sessions model.Sessions
	condition.Preload("Movie").Preload("Room").Preload("Room.Cinema").Order("start_time ASC").Find(&sessions)
	response := &model.ResponseCustom{
		Rows:       sessions,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetSessionById(c *fiber.Ctx) error {
	sessionId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse sessionId fail"))
	}

	var session model.Session
	if err := database.DB.Preload("Movie").Preload("Room").Preload("Room.Cinema").First(&session, sessionId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

func CreateSession(c *fiber.Ctx) error {
	db := database.DB
	sessionInput, ok := c.Locals("inputCreateSession").(model.CreateSessionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var movie model.Movie
	if err := db.First(&movie, sessionInput.MovieId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	var room model.Room
	if err := db.First(&room, sessionInput.RoomId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	// Overlap with another screening in the same room is allowed but
	// worth flagging to the admin creating the schedule.
	var overlapping int64
	windowStart := sessionInput.StartTime.Add(-time.Duration(movie.Duration) * time.Minute)
	windowEnd := sessionInput.StartTime.Add(time.Duration(movie.Duration) * time.Minute)
	db.Model(&model.Session{}).
		Where("room_id = ? AND start_time > ? AND start_time < ?", sessionInput.RoomId, windowStart, windowEnd).
		Count(&overlapping)

	newSession := new(model.Session)
	copier.Copy(&newSession, &sessionInput)

	if err := db.Create(&newSession).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	db.Preload("Movie").Preload("Room").First(&newSession, newSession.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"session":        newSession,
		"overlapWarning": overlapping > 0,
	})
}

func EditSession(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputEditSession").(model.EditSessionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	sessionId, ok := c.Locals("sessionId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse sessionId fail"))
	}

	var session model.Session
	if err := db.First(&session, sessionId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	updateMap := map[string]interface{}{}
	if input.MovieId != nil {
		var movie model.Movie
		if err := db.First(&movie, *input.MovieId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
		}
		updateMap["movie_id"] = *input.MovieId
	}
	if input.RoomId != nil {
		var room model.Room
		if err := db.First(&room, *input.RoomId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
		}
		updateMap["room_id"] = *input.RoomId
	}
	if input.StartTime != nil {
		updateMap["start_time"] = *input.StartTime
	}
	if input.Price != nil {
		// Price changes do not touch sold seats or open carts; those
		// lines keep the unit price captured when they were added.
		updateMap["price"] = *input.Price
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, session)
	}

	if err := db.Model(&session).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.Preload("Movie").Preload("Room").First(&session, sessionId)

	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

func DeleteSession(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", input.IDs).Delete(&model.SeatPurchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, input.IDs).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}
