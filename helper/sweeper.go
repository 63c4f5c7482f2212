package helper

import (
	"log"
	"os"
	"strconv"
	"time"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var cartSweeper *cron.Cron

// StartCartSweeper periodically deletes open carts that have been idle
// past CART_TTL_MINUTES (default 120). Their seat purchases go with them
// so the seats return to the pool. Checked-out carts are never touched.
func StartCartSweeper() {
	cartSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := cartSweeper.AddFunc("*/10 * * * *", sweepStaleCarts)
	if err != nil {
		log.Printf("failed to start cart sweeper: %v", err)
		return
	}

	cartSweeper.Start()
	log.Println("Cart sweeper started (every 10 minutes)")
}

func StopCartSweeper() {
	if cartSweeper != nil {
		cartSweeper.Stop()
	}
}

func cartTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("CART_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 120
	}
	return time.Duration(minutes) * time.Minute
}

func sweepStaleCarts() {
	cutoff := time.Now().Add(-cartTTL())

	var stale []model.Cart
	if err := database.DB.
		Where("status = ? AND updated_at < ?", constants.CART_STATUS_OPEN, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("cart sweep scan failed: %v", err)
		return
	}

	for _, cart := range stale {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.SeatPurchase{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.SessionLine{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.FoodLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			log.Printf("failed to sweep cart %s: %v", cart.PublicCode, err)
		} else {
			log.Printf("swept stale cart %s (user %d)", cart.PublicCode, cart.UserId)
		}
	}
}
