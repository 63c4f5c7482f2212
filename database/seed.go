package database

import (
	"log"
	"os"
	"time"

	"cinema_tickets/model"
	"cinema_tickets/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@cinema.local"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "change-me-now"
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
	if err != nil {
		log.Println("failed to hash seed admin password:", err)
		return
	}

	admin := model.User{
		Name:      "Administration",
		Email:     adminEmail,
		Password:  string(bytes),
		BirthDate: utils.CustomDate{Time: parseDate("1990-01-01")},
		IsAdmin:   true,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}

	foodItems := []model.FoodItem{
		{Name: "Popcorn (large)", Price: 8.50, Category: "snack"},
		{Name: "Popcorn (small)", Price: 5.00, Category: "snack"},
		{Name: "Nachos", Price: 7.00, Category: "snack"},
		{Name: "Soda", Price: 4.00, Category: "drink"},
		{Name: "Water", Price: 2.50, Category: "drink"},
	}
	for _, item := range foodItems {
		if err := db.Where(model.FoodItem{Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed food item:", item.Name, "error:", err)
		}
	}
}
