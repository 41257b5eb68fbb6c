package main

import (
	"context"
	"log"

	"inkfeed-be/internal/bootstrap"
	"inkfeed-be/internal/config"
	"inkfeed-be/internal/server"
	"inkfeed-be/internal/tracer"
	"inkfeed-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	log.Println("Background: Starting Notification Recorder...")
	if err := container.NotificationService.Start(context.Background()); err != nil {
		log.Printf("Background Recorder Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
