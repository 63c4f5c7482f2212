package helper

import (
	"log"
	"time"

	"cinema_tickets/constants"
	"cinema_tickets/database"
	"cinema_tickets/model"

	"github.com/go-co-op/gocron/v2"
)

var movieScheduler gocron.Scheduler

// AutoUpdateMovieStatus rolls COMING_SOON movies to NOW_SHOWING once
// their release date arrives. ENDED stays a manual admin decision.
func AutoUpdateMovieStatus() {
	log.Println("[CRON] AutoUpdateMovieStatus triggered")

	db := database.DB
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var movies []model.Movie
	if err := db.Where("status = ?", constants.MOVIE_STATUS_COMING_SOON).Find(&movies).Error; err != nil {
		log.Printf("movie status scan failed: %v", err)
		return
	}

	for _, movie := range movies {
		releaseDate := movie.ReleaseDate.Time.UTC().Truncate(24 * time.Hour)
		if today.Before(releaseDate) {
			continue
		}
		movie.Status = constants.MOVIE_STATUS_NOW_SHOWING
		if err := db.Save(&movie).Error; err != nil {
			log.Printf("failed to update movie status '%s': %v", movie.Title, err)
		} else {
			log.Printf("movie '%s' -> %s", movie.Title, movie.Status)
		}
	}
}

func StartMovieStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	movieScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoUpdateMovieStatus),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Movie status scheduler started (00:05)")
}

func StopMovieStatusScheduler() {
	if movieScheduler != nil {
		_ = movieScheduler.Shutdown()
	}
}
