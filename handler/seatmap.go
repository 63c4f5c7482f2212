package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"cinema_tickets/config"
	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"
	"cinema_tickets/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	seatConnections = make(map[uint]map[*websocket.Conn]bool)
	seatMutex       sync.Mutex
)

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

type seatEvent struct {
	SessionId uint   `json:"sessionId"`
	SeatLabel string `json:"seatLabel"`
	Taken     bool   `json:"taken"`
}

// GetSessionSeats returns the sold seats of one session.
func GetSessionSeats(c *fiber.Ctx) error {
	sessionId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse sessionId fail"))
	}
	db := database.DB

	var session model.Session
	if err := db.First(&session, sessionId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err, constants.KEY_NOT_FOUND)
	}

	soldLabels, err := fetchSoldSeats(uint(sessionId))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sessionId": session.ID,
		"sold":      soldLabels,
	})
}

func fetchSoldSeats(sessionId uint) ([]string, error) {
	var labels []string
	err := database.DB.Model(&model.SeatPurchase{}).
		Where("session_id = ?", sessionId).
		Order("seat_label ASC").
		Pluck("seat_label", &labels).Error
	if labels == nil {
		labels = []string{}
	}
	return labels, err
}

// SeatWebsocket streams seat availability for one session. Each new
// client gets the full sold list once, then deltas relayed from Redis so
// updates reach clients on every app instance.
func SeatWebsocket(c *websocket.Conn) {
	sessionIdStr := c.Params("id")
	id64, err := strconv.ParseUint(sessionIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid sessionId: %s", sessionIdStr)
		c.Close()
		return
	}
	sessionId := uint(id64)

	seatMutex.Lock()
	if seatConnections[sessionId] == nil {
		seatConnections[sessionId] = make(map[*websocket.Conn]bool)
	}
	seatConnections[sessionId][c] = true
	seatMutex.Unlock()

	defer func() {
		seatMutex.Lock()
		delete(seatConnections[sessionId], c)
		if len(seatConnections[sessionId]) == 0 {
			delete(seatConnections, sessionId)
		}
		seatMutex.Unlock()
		c.Close()
	}()

	sold, err := fetchSoldSeats(sessionId)
	if err != nil {
		log.Printf("Error loading seats for session %d: %v", sessionId, err)
		return
	}
	c.WriteJSON(fiber.Map{"sessionId": sessionId, "sold": sold})

	pubsub := getRedisClient().Subscribe(
		context.Background(),
		fmt.Sprintf("session:%d", sessionId),
	)
	defer pubsub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			payload := []byte(msg.Payload)

			seatMutex.Lock()
			for conn := range seatConnections[sessionId] {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					conn.Close()
					delete(seatConnections[sessionId], conn)
				}
			}
			seatMutex.Unlock()
		}
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	pubsub.Close()
	<-done
}

// BroadcastSeatUpdate publishes one seat change to the session channel.
// Publish failures are logged and dropped; the purchase itself already
// committed.
func BroadcastSeatUpdate(sessionId uint, seatLabel string, taken bool) {
	payload, err := json.Marshal(seatEvent{
		SessionId: sessionId,
		SeatLabel: seatLabel,
		Taken:     taken,
	})
	if err != nil {
		return
	}

	if err := getRedisClient().Publish(
		context.Background(),
		fmt.Sprintf("session:%d", sessionId),
		payload,
	).Err(); err != nil {
		log.Printf("Error publishing seat update for session %d: %v", sessionId, err)
	}
}
