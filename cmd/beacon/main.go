package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/quietvalley/beacon/internal/database"
	"github.com/quietvalley/beacon/internal/export"
	"github.com/quietvalley/beacon/internal/logging"
	"github.com/quietvalley/beacon/internal/server"
)

func main() {
	port := os.Getenv("BEACON_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("BEACON_DB_PATH")
	if dbPath == "" {
		dbPath = "beacon.db"
	}

	logger := logging.Setup(os.Getenv("BEACON_LOG_LEVEL"), os.Getenv("BEACON_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	exportDir := os.Getenv("BEACON_EXPORT_DIR")
	if exportDir == "" {
		exportDir = "data"
	}
	exportHour := 3
	if h, err := strconv.Atoi(os.Getenv("BEACON_EXPORT_HOUR")); err == nil {
		exportHour = h
	}
	exportCfg := export.Config{
		Dir:  exportDir,
		Hour: exportHour,
		S3: export.S3Config{
			Endpoint:  os.Getenv("BEACON_EXPORT_S3_ENDPOINT"),
			Bucket:    os.Getenv("BEACON_EXPORT_S3_BUCKET"),
			Region:    os.Getenv("BEACON_EXPORT_S3_REGION"),
			AccessKey: os.Getenv("BEACON_EXPORT_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("BEACON_EXPORT_S3_SECRET_KEY"),
		},
	}

	srv := server.New(db, exportCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	srv.ExportManager().Start(ctx)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Beacon running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	cancel()
	srv.ExportManager().Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
