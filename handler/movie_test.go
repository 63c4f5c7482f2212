package handler_test

import (
	"fmt"
	"testing"

	"cinema_tickets/database"
	"cinema_tickets/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMovieRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "Ana", "ana@example.com", "secret-pass", false)
	admin := createTestUser(t, "Root", "root@example.com", "admin-pass", true)

	payload := fiber.Map{
		"title":       "Night Train",
		"duration":    118,
		"rating":      "PG-13",
		"genre":       "thriller",
		"releaseDate": "2026-10-01",
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/movie/", payload, bearerFor(t, user))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "forbidden", body["keyError"])

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/movie/", payload, bearerFor(t, admin))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	movie := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "night-train", movie["slug"])
	assert.Equal(t, "COMING_SOON", movie["status"])
}

func TestMovieSlugCollision(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "Root", "root@example.com", "admin-pass", true)
	auth := bearerFor(t, admin)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, fiber.MethodPost, "/api/v1/movie/", fiber.Map{
			"title":       "Night Train",
			"duration":    118,
			"rating":      "PG-13",
			"releaseDate": "2026-10-01",
		}, auth)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var slugs []string
	database.DB.Model(&model.Movie{}).Order("id ASC").Pluck("slug", &slugs)
	require.Len(t, slugs, 2)
	assert.Equal(t, "night-train", slugs[0])
	assert.Equal(t, "night-train-1", slugs[1])
}

func TestEditMovieById(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "Root", "root@example.com", "admin-pass", true)
	_, session := createTestCatalog(t)

	resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/movie/%d", session.MovieId), fiber.Map{
		"rating": "R",
	}, bearerFor(t, admin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	movie := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "R", movie["rating"])
	assert.Equal(t, "Night Train", movie["title"])

	resp = doJSON(t, app, fiber.MethodPut, "/api/v1/movie/9999", fiber.Map{
		"rating": "R",
	}, bearerFor(t, admin))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "not_found", body["keyError"])
}

func TestSearchMoviesReturnsCandidates(t *testing.T) {
	app := setupTestApp(t)
	db := database.DB
	require.NoError(t, db.Create(&model.Movie{
		Title: "Night Train", Duration: 118, Rating: "PG-13", Slug: "night-train",
	}).Error)
	require.NoError(t, db.Create(&model.Movie{
		Title: "Night Train 2", Duration: 121, Rating: "PG-13", Slug: "night-train-2",
	}).Error)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/movie/search?title=night+train", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.True(t, data["ambiguous"].(bool))
	assert.Len(t, data["candidates"].([]interface{}), 2)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/movie/search?title=train+2", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.False(t, data["ambiguous"].(bool))
	assert.Len(t, data["candidates"].([]interface{}), 1)
}

func TestDeleteMovieNeedsPasswordConfirmation(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "Root", "root@example.com", "admin-pass", true)
	auth := bearerFor(t, admin)
	_, session := createTestCatalog(t)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/v1/movie/", fiber.Map{
		"ids":      []uint{session.MovieId},
		"password": "not-admin-pass",
	}, auth)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "wrong_password", body["keyError"])

	resp = doJSON(t, app, fiber.MethodDelete, "/api/v1/movie/", fiber.Map{
		"ids":      []uint{session.MovieId},
		"password": "admin-pass",
	}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var movies, sessions int64
	database.DB.Model(&model.Movie{}).Count(&movies)
	database.DB.Model(&model.Session{}).Count(&sessions)
	assert.EqualValues(t, 0, movies)
	assert.EqualValues(t, 0, sessions)
}

func TestPublicMovieBySlug(t *testing.T) {
	app := setupTestApp(t)
	createTestCatalog(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/movie/slug/night-train", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	movie := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "Night Train", movie["title"])
	assert.Len(t, movie["sessions"].([]interface{}), 1)

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/movie/slug/missing-movie", nil, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
