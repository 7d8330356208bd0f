package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"costcompare/internal/app"
	"costcompare/internal/config"
	"costcompare/internal/models"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Application ---
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// --- Catalog event consumer ---
	if application.Events != nil {
		log.Println("Starting RabbitMQ consumer for catalog events...")
		err := application.Events.ConsumeItemEvents(func(event models.ItemEvent) error {
			log.Printf("Received %s event for item %s", event.Type, event.ItemID)
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- HTTP server ---
	log.Printf("Starting server on port %s (%s, driver %s)", cfg.AppPort, cfg.AppEnv, cfg.DatabaseDriver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := application.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
