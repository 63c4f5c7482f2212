package database

import (
	"fmt"
	"strconv"

	"cinema_tickets/config"
	"cinema_tickets/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	Migrate(DB)
	fmt.Println("Database Migrated")

	SeedData(DB)
}

// Migrate runs AutoMigrate for every model. Shared with the test setup so
// both targets carry the same schema, including the (session, seat)
// unique index on seat purchases.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&model.User{},
		&model.Cinema{},
		&model.Room{},
		&model.Movie{},
		&model.Session{},
		&model.FoodItem{},
		&model.Cart{},
		&model.FoodLine{},
		&model.SessionLine{},
		&model.SeatPurchase{},
	)
}
