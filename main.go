package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"ideaforge/adapters/postgres"
	"ideaforge/internal/config"
	"ideaforge/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.Connect(ctx, appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	if err := c.InitWithDatabase(ctx, db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Close()

	if appConfig.Engine.CorpusFile != "" {
		n, err := c.SeedCorpus(ctx, appConfig.Engine.CorpusFile)
		if err != nil {
			log.Fatalf("Failed to seed corpus: %v", err)
		}
		log.Printf("Seeded reference corpus with %d ideas", n)
	}

	addr := ":" + appConfig.Server.Port
	log.Printf("API server listening on %s", addr)
	if err := http.ListenAndServe(addr, c.Server); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
