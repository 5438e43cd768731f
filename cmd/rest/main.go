package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-chat-be/internal/bootstrap"
	"pdf-chat-be/internal/config"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/server"
	"pdf-chat-be/internal/tracer"
	"pdf-chat-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Storage.Validate(); err != nil {
		log.Fatalf("Invalid storage configuration: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	// 2. Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Database (only when a store needs it)
	var gormDB *gorm.DB
	if cfg.Storage.NeedsDatabase() {
		wake := database.WakeUp(context.Background(), cfg.Database.DSN())
		if !wake.Ok {
			sysLogger.Warn("DATABASE", "Database wake-up failed", map[string]interface{}{"error": wake.Message})
		}

		db, err := database.NewGormDBFromDSN(cfg.Database.DSN(), cfg.App.Environment != "production")
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Panicf("Unable to migrate database: %v", err)
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer container.Close()

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		sysLogger.Error("EVENTS", "Failed to start event consumer", map[string]interface{}{"error": err.Error()})
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sysLogger.Error("HTTP", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
