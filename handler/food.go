package handler

import (
	"errors"
	"strings"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetFoodItems(c *fiber.Ctx) error {
	filterInput := new(model.FilterFoodItem)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.FoodItem{})
	if filterInput.SearchKey != "" {
		condition = condition.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filterInput.SearchKey)+"%")
	}
	if filterInput.Category != "" {
		condition = condition.Where("category = ?", filterInput.Category)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var items model.FoodItems
	condition.Order("id ASC").Find(&items)
	response := &model.ResponseCustom{
		Rows:       items,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetFoodItemById(c *fiber.Ctx) error {
	foodItemId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse foodItemId fail"))
	}

	var item model.FoodItem
	if err := database.DB.First(&item, foodItemId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func CreateFoodItem(c *fiber.Ctx) error {
	db := database.DB
	foodInput, ok := c.Locals("inputCreateFoodItem").(model.CreateFoodItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newItem := new(model.FoodItem)
	copier.Copy(&newItem, &foodInput)

	if err := db.Create(&newItem).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newItem)
}

func EditFoodItem(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputEditFoodItem").(model.EditFoodItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	foodItemId, ok := c.Locals("foodItemId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse foodItemId fail"))
	}

	var item model.FoodItem
	if err := db.First(&item, foodItemId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	updateMap := map[string]interface{}{}
	if input.Name != nil {
		updateMap["name"] = *input.Name
	}
	if input.Price != nil {
		// Existing cart lines keep their snapshot price.
		updateMap["price"] = *input.Price
	}
	if input.Category != nil {
		updateMap["category"] = *input.Category
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, item)
	}

	if err := db.Model(&item).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.First(&item, foodItemId)

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteFoodItem(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if err := db.Delete(&model.FoodItem{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}
