package handler

import (
	"errors"
	"mime/multipart"
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

func GetMovies(c *fiber.Ctx) error {
	filterInput := new(model.FilterMovieInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Movie{})
	if filterInput.Title != "" {
		condition = condition.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filterInput.Title)+"%")
	}
	if filterInput.Genre != "" {
		condition = condition.Where("genre = ?", filterInput.Genre)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var movies model.Movies
	condition.Order("id ASC").Find(&movies)
	response := &model.ResponseCustom{
		Rows:       movies,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetMovieById(c *fiber.Ctx) error {
	movieId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse movieId fail"))
	}

	var movie model.Movie
	if err := database.DB.Preload("Sessions").First(&movie, movieId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func GetMovieBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var movie model.Movie
	if err := database.DB.Preload("Sessions").Where("slug = ?", slugParam).First(&movie).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

// GetMoviesByStatus is the public listing behind the now-showing and
// coming-soon pages.
func GetMoviesByStatus(c *fiber.Ctx) error {
	status := strings.ToUpper(c.Params("status"))
	if status != constants.MOVIE_STATUS_COMING_SOON &&
		status != constants.MOVIE_STATUS_NOW_SHOWING &&
		status != constants.MOVIE_STATUS_ENDED {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("unknown movie status"), constants.KEY_INVALID_FORMAT)
	}

	var movies model.Movies
	if err := database.DB.
		Where("status = ?", status).
		Order("release_date ASC, id ASC").
		Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movies)
}

// SearchMovies is the read-only natural-key lookup. It returns every
// candidate for a title instead of silently picking the first match;
// mutation endpoints take ids.
func SearchMovies(c *fiber.Ctx) error {
	title := c.Query("title")
	if title == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("title query is required"))
	}

	var movies model.Movies
	if err := database.DB.
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%").
		Order("id ASC").
		Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"candidates": movies,
		"ambiguous":  len(movies) > 1,
	})
}

func CreateMovie(c *fiber.Ctx) error {
	db := database.DB
	movieInput, ok := c.Locals("inputCreateMovie").(model.CreateMovieInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newMovie := new(model.Movie)
	copier.Copy(&newMovie, &movieInput)
	newMovie.Status = constants.MOVIE_STATUS_COMING_SOON
	newMovie.Slug = helper.GenerateUniqueMovieSlug(db, movieInput.Title)

	if err := db.Create(&newMovie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newMovie)
}

func EditMovie(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputEditMovie").(model.EditMovieInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	movieId, ok := c.Locals("movieId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse movieId fail"))
	}

	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	updateMap := map[string]interface{}{}

	if input.Title != nil && *input.Title != movie.Title {
		updateMap["title"] = *input.Title
		updateMap["slug"] = helper.GenerateUniqueMovieSlug(db, *input.Title)
	}
	if input.Duration != nil {
		updateMap["duration"] = *input.Duration
	}
	if input.Rating != nil {
		updateMap["rating"] = *input.Rating
	}
	if input.Genre != nil {
		updateMap["genre"] = *input.Genre
	}
	if input.ReleaseDate != nil {
		updateMap["release_date"] = *input.ReleaseDate
	}
	if input.Status != nil {
		updateMap["status"] = *input.Status
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, movie)
	}

	if err := db.Model(&movie).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.First(&movie, movieId)

	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

// DeleteMovie re-validates the acting admin's password before the
// destructive commit, then removes the movies and their sessions.
func DeleteMovie(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputDeleteMovie").(model.DeleteMovieInput)
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
		if err := tx.Where("movie_id IN ?", input.IDs).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, input.IDs).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}

func UploadMoviePoster(c *fiber.Ctx) error {
	db := database.DB
	movieId, ok := c.Locals("movieId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse movieId fail"))
	}
	poster, ok := c.Locals("posterFile").(*multipart.FileHeader)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse poster fail"))
	}

	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	url, publicId, err := helper.UploadPoster(c.Context(), poster)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Poster upload failed", err)
	}

	if err := db.Model(&movie).Updates(map[string]interface{}{
		"poster_url":       url,
		"poster_public_id": publicId,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	db.First(&movie, movieId)

	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}
