package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/daniil-5/hotelbooking/config"
)

func main() {
	// Initialize configuration
	// Try to load from config.yaml first, fallback to environment variables
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Printf("Config file not found or invalid, using environment variables: %v", err)
		cfg, err = config.Initialise("", true)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := setupApplication(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to set up application:", err)
	}
	defer app.close()

	log.Printf("Hotel booking core started (service %s)", cfg.ServiceName)

	// The invalidation subscriber is the one long-lived task per process;
	// it blocks until shutdown.
	if app.subscriber != nil {
		if err := app.subscriber.Run(ctx); err != nil {
			log.Fatal("Invalidation subscriber failed:", err)
		}
	} else {
		<-ctx.Done()
	}

	log.Println("Shutting down")
}
