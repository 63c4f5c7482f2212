package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"cinema_tickets/database"
	"cinema_tickets/helper"
	"cinema_tickets/model"
	"cinema_tickets/router"
	"cinema_tickets/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func createTestUser(t *testing.T, name, email, password string, isAdmin bool) model.User {
	t.Helper()
	hash, err := helper.HashPassword(password)
	require.NoError(t, err)
	user := model.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		BirthDate: utils.CustomDate{Time: time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC)},
		IsAdmin:   isAdmin,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func bearerFor(t *testing.T, user model.User) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, auth string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func createTestCatalog(t *testing.T) (model.FoodItem, model.Session) {
	t.Helper()
	db := database.DB

	food := model.FoodItem{Name: "Popcorn (large)", Price: 8.50, Category: "snack"}
	require.NoError(t, db.Create(&food).Error)

	cinema := model.Cinema{Name: "Center Plaza", Location: "Downtown", Capacity: 400, Slug: "center-plaza"}
	require.NoError(t, db.Create(&cinema).Error)

	room := model.Room{Number: "1", Capacity: 80, CinemaId: cinema.ID}
	require.NoError(t, db.Create(&room).Error)

	movie := model.Movie{
		Title:    "Night Train",
		Duration: 118,
		Rating:   "PG-13",
		Genre:    "thriller",
		Status:   "NOW_SHOWING",
		Slug:     "night-train",
	}
	require.NoError(t, db.Create(&movie).Error)

	session := model.Session{
		MovieId:   movie.ID,
		RoomId:    room.ID,
		StartTime: time.Now().Add(48 * time.Hour),
		Price:     12.00,
	}
	require.NoError(t, db.Create(&session).Error)

	return food, session
}
