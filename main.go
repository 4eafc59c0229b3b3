package main

import (
	"log"

	"github.com/joho/godotenv"

	"lsparrow/internal/config"
	"lsparrow/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server := ui.NewServer(cfg)
	log.Printf("Starting survey analysis server on port %s", cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
