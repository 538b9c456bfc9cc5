package main

import (
	"context"
	"eld-log-service/internal/adapters/cache"
	"eld-log-service/internal/config"
	"eld-log-service/internal/platform/db"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool creates the Postgres cache schema. The server creates the SQLite
// schema itself on startup.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Initializing database schema...")
	if err := cache.InitSchema(ctx, pg, cache.Postgres); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
