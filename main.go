package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lunabot/pkg/config"
	"lunabot/pkg/progression"
	"lunabot/pkg/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for connection settings
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	var st store.Store
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		key := os.Getenv("PROGRESSION_STATE_KEY")
		if key == "" {
			key = "luna:progression"
		}
		rs, err := store.NewRedisStore(redisURL, key)
		if err != nil {
			log.Fatalf("Failed to connect to Redis store: %v", err)
		}
		defer rs.Close()
		st = rs
		log.Printf("Using redis store at key %s", key)
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		path := filepath.Join(dataDir, "users.json")
		st = store.NewFileStore(path)
		log.Printf("Using file store at %s", path)
	}

	engine := progression.NewEngine(st, cfg)

	interval := time.Duration(cfg.Maintenance.SweepIntervalHours * float64(time.Hour))
	sweeper := progression.NewSweeper(st, engine.Meter, interval)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start maintenance scheduler: %v", err)
	}
	defer sweeper.Stop()

	log.Printf("Progression maintenance running, sweeping every %s. Press CTRL-C to exit.", interval)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}
