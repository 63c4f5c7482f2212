package main

import (
	"log"

	"cinema_tickets/config"
	"cinema_tickets/database"
	"cinema_tickets/helper"
	"cinema_tickets/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config("CLIENT_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartMovieStatusScheduler()
	defer helper.StopMovieStatusScheduler()
	helper.StartCartSweeper()
	defer helper.StopCartSweeper()

	router.SetupRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
