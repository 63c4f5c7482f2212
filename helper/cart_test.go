package helper

import (
	"testing"
	"time"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db
	return db
}

func TestGetOrCreateCartReusesOpenCart(t *testing.T) {
	db := setupTestDB(t)
	user := model.User{Name: "Ana", Email: "ana@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	first, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	second, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// A checked-out cart is terminal; the next call opens a new one.
	require.NoError(t, db.Model(&model.Cart{}).
		Where("id = ?", first.ID).
		Update("status", constants.CART_STATUS_CHECKED_OUT).Error)
	third, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Equal(t, constants.CART_STATUS_OPEN, third.Status)
}

func TestOpenCartUniquePerUser(t *testing.T) {
	db := setupTestDB(t)
	user := model.User{Name: "Ana", Email: "ana@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	// A second OPEN cart for the same user is rejected by the partial
	// unique index, so a racing first view cannot slip a duplicate in.
	dup := model.Cart{UserId: user.ID, PublicCode: "CRT-dup", Status: constants.CART_STATUS_OPEN}
	err = db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// The loser of that race lands on the existing cart instead.
	again, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var open int64
	db.Model(&model.Cart{}).
		Where("user_id = ? AND status = ?", user.ID, constants.CART_STATUS_OPEN).
		Count(&open)
	assert.EqualValues(t, 1, open)
}

func TestFinalizeCartOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	user := model.User{Name: "Ana", Email: "ana@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	code, err := FinalizeCart(db, cart.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^RCP-`, code)

	var fresh model.Cart
	require.NoError(t, db.First(&fresh, cart.ID).Error)
	assert.Equal(t, constants.CART_STATUS_CHECKED_OUT, fresh.Status)
	assert.Equal(t, code, fresh.PublicCode)
	require.NotNil(t, fresh.CheckedOutAt)

	// The second finalize loses the status guard and must not pretend
	// it produced a receipt.
	_, err = FinalizeCart(db, cart.ID)
	assert.ErrorIs(t, err, ErrCartClosed)

	var after model.Cart
	require.NoError(t, db.First(&after, cart.ID).Error)
	assert.Equal(t, code, after.PublicCode)
}

func TestRecomputeCartTotal(t *testing.T) {
	db := setupTestDB(t)
	user := model.User{Name: "Ana", Email: "ana@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	cart, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.FoodLine{
		CartId: cart.ID, FoodItemId: 1, Quantity: 3, UnitPrice: 8.50, Subtotal: 25.50,
	}).Error)
	require.NoError(t, db.Create(&model.SessionLine{
		CartId: cart.ID, SessionId: 1, SeatLabel: "D7", Quantity: 1, UnitPrice: 12.00, Subtotal: 12.00,
	}).Error)

	total, err := RecomputeCartTotal(db, cart.ID)
	require.NoError(t, err)
	assert.InDelta(t, 37.50, total, 0.001)

	var fresh model.Cart
	require.NoError(t, db.First(&fresh, cart.ID).Error)
	assert.InDelta(t, 37.50, fresh.Total, 0.001)
}

func TestSweepStaleCarts(t *testing.T) {
	db := setupTestDB(t)
	user := model.User{Name: "Ana", Email: "ana@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	stale := model.Cart{UserId: user.ID, PublicCode: "CRT-stale", Status: constants.CART_STATUS_OPEN}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&model.SeatPurchase{
		SessionId: 1, SeatLabel: "D7", CartId: stale.ID,
	}).Error)
	require.NoError(t, db.Model(&model.Cart{}).Where("id = ?", stale.ID).
		UpdateColumn("updated_at", time.Now().Add(-3*time.Hour)).Error)

	other := model.User{Name: "Bruno", Email: "bruno@example.com", Password: "x"}
	require.NoError(t, db.Create(&other).Error)
	fresh := model.Cart{UserId: other.ID, PublicCode: "CRT-fresh", Status: constants.CART_STATUS_OPEN}
	require.NoError(t, db.Create(&fresh).Error)

	done := model.Cart{UserId: user.ID, PublicCode: "RCP-done", Status: constants.CART_STATUS_CHECKED_OUT}
	require.NoError(t, db.Create(&done).Error)
	require.NoError(t, db.Model(&model.Cart{}).Where("id = ?", done.ID).
		UpdateColumn("updated_at", time.Now().Add(-3*time.Hour)).Error)

	sweepStaleCarts()

	var remaining []model.Cart
	require.NoError(t, db.Order("id ASC").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "CRT-fresh", remaining[0].PublicCode)
	assert.Equal(t, "RCP-done", remaining[1].PublicCode)

	// The swept cart's seat is back in the pool.
	var purchases int64
	db.Model(&model.SeatPurchase{}).Count(&purchases)
	assert.EqualValues(t, 0, purchases)
}

func TestAutoUpdateMovieStatus(t *testing.T) {
	db := setupTestDB(t)
	released := model.Movie{
		Title: "Released", Duration: 100, Rating: "PG", Slug: "released",
		Status:      constants.MOVIE_STATUS_COMING_SOON,
		ReleaseDate: utils.CustomDate{Time: time.Now().UTC().Add(-48 * time.Hour)},
	}
	upcoming := model.Movie{
		Title: "Upcoming", Duration: 100, Rating: "PG", Slug: "upcoming",
		Status:      constants.MOVIE_STATUS_COMING_SOON,
		ReleaseDate: utils.CustomDate{Time: time.Now().UTC().Add(14 * 24 * time.Hour)},
	}
	ended := model.Movie{
		Title: "Ended", Duration: 100, Rating: "PG", Slug: "ended",
		Status:      constants.MOVIE_STATUS_ENDED,
		ReleaseDate: utils.CustomDate{Time: time.Now().UTC().Add(-365 * 24 * time.Hour)},
	}
	require.NoError(t, db.Create(&released).Error)
	require.NoError(t, db.Create(&upcoming).Error)
	require.NoError(t, db.Create(&ended).Error)

	AutoUpdateMovieStatus()

	statuses := map[string]string{}
	var movies []model.Movie
	require.NoError(t, db.Find(&movies).Error)
	for _, m := range movies {
		statuses[m.Slug] = m.Status
	}
	assert.Equal(t, constants.MOVIE_STATUS_NOW_SHOWING, statuses["released"])
	assert.Equal(t, constants.MOVIE_STATUS_COMING_SOON, statuses["upcoming"])
	assert.Equal(t, constants.MOVIE_STATUS_ENDED, statuses["ended"])
}
