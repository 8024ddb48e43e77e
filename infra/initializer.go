package infra

import (
	"log"

	"github.com/joho/godotenv"
)

// Initialize loads a local .env file when present. Deployed environments
// set SECRET_KEY, DB_* and MAIL_* directly.
func Initialize() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using environment variables")
	}
}
