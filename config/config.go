package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a value from the environment, loading .env once if present.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}
	return os.Getenv(key)
}
