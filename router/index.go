package router

import (
	"cinema_tickets/handler"
	"cinema_tickets/middleware"
	"cinema_tickets/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterUser(), handler.RegisterUser)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)

	user := v1.Group("/user", logger.New())
	user.Get("/me", middleware.Protected(), handler.Me)
	user.Get("/", middleware.Protected(), middleware.AdminRequired(), handler.GetUsers)
	user.Put("/", middleware.Protected(), validate.UpdateUser(), handler.UpdateUser)
	user.Delete("/", middleware.Protected(), validate.DeleteUser(), handler.DeleteUser)

	movie := v1.Group("/movie", logger.New())
	movie.Get("/", handler.GetMovies)
	movie.Get("/search", handler.SearchMovies)
	movie.Get("/status/:status", handler.GetMoviesByStatus)
	movie.Get("/slug/:slug", handler.GetMovieBySlug)
	movie.Get("/:movieId", validate.GetById("movieId"), handler.GetMovieById)
	movie.Post("/", middleware.Protected(), middleware.AdminRequired(), validate.CreateMovie(), handler.CreateMovie)
	movie.Put("/:movieId", middleware.Protected(), middleware.AdminRequired(), validate.EditMovie("movieId"), handler.EditMovie)
	movie.Delete("/", middleware.Protected(), middleware.AdminRequired(), validate.DeleteMovie(), handler.DeleteMovie)
	movie.Post("/:movieId/poster", middleware.Protected(), middleware.AdminRequired(), validate.UploadPoster("movieId"), handler.UploadMoviePoster)

	cinema := v1.Group("/cinema", logger.New())
	cinema.Get("/", handler.GetCinemas)
	cinema.Get("/search", handler.SearchCinemas)
	cinema.Get("/:cinemaId", validate.GetById("cinemaId"), handler.GetCinemaById)
	cinema.Post("/", middleware.Protected(), middleware.AdminRequired(), validate.CreateCinema(), handler.CreateCinema)
	cinema.Put("/:cinemaId", middleware.Protected(), middleware.AdminRequired(), validate.EditCinema("cinemaId"), handler.EditCinema)
	cinema.Delete("/", middleware.Protected(), middleware.AdminRequired(), validate.DeleteCinema(), handler.DeleteCinema)

	room := v1.Group("/room", logger.New())
	room.Get("/", handler.GetRooms)
	room.Get("/search", handler.SearchRooms)
	room.Get("/:roomId", validate.GetById("roomId"), handler.GetRoomById)
	room.Post("/", middleware.Protected(), middleware.AdminRequired(), validate.CreateRoom(), handler.CreateRoom)
	room.Put("/:roomId", middleware.Protected(), middleware.AdminRequired(), validate.EditRoom("roomId"), handler.EditRoom)
	room.Delete("/", middleware.Protected(), middleware.AdminRequired(), validate.Delete(), handler.DeleteRoom)

	session := v1.Group("/session", logger.New())
	session.Get("/", handler.GetSessions)
	session.Get("/:sessionId", validate.GetById("sessionId"), handler.GetSessionById)
	session.Get("/:sessionId/seats", validate.GetById("sessionId"), handler.GetSessionSeats)
	session.Post("/", middleware.Protected(), middleware.AdminRequired(), validate.CreateSession(), handler.CreateSession)
	session.Put("/:sessionId", middleware.Protected(), middleware.AdminRequired(), validate.EditSession("sessionId"), handler.EditSession)
	session.Delete("/", middleware.Protected(), middleware.AdminRequired(), validate.Delete(), handler.DeleteSession)

	session.Get("/:id/seats/live", websocket.New(handler.SeatWebsocket))

	food := v1.Group("/food", logger.New())
	food.Get("/", handler.GetFoodItems)
	food.Get("/:foodItemId", validate.GetById("foodItemId"), handler.GetFoodItemById)
	food.Post("/", middleware.Protected(), middleware.AdminRequired(), validate.CreateFoodItem(), handler.CreateFoodItem)
	food.Put("/:foodItemId", middleware.Protected(), middleware.AdminRequired(), validate.EditFoodItem("foodItemId"), handler.EditFoodItem)
	food.Delete("/", middleware.Protected(), middleware.AdminRequired(), validate.Delete(), handler.DeleteFoodItem)

	cart := v1.Group("/cart", logger.New())
	cart.Get("/", middleware.Protected(), handler.GetCart)
	cart.Post("/food", middleware.Protected(), validate.AddFoodLine(), handler.AddFoodLine)
	cart.Delete("/food/:lineId", middleware.Protected(), validate.GetById("lineId"), handler.RemoveFoodLine)
	cart.Post("/seats", middleware.Protected(), validate.AddSeat(), handler.AddSeat)
	cart.Delete("/seats/:sessionId", middleware.Protected(), validate.GetById("sessionId"), validate.RemoveSeat(), handler.RemoveSeat)
	cart.Post("/checkout", middleware.Protected(), handler.Checkout)

	receipt := v1.Group("/receipt", logger.New())
	receipt.Get("/", middleware.Protected(), handler.GetReceipts)
	receipt.Get("/:code", middleware.Protected(), handler.GetReceiptByCode)
}
