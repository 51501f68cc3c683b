package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alx_travel_app/pkg/api"
	"alx_travel_app/pkg/config"
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/seed"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting travel API service...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	if err := database.Ping(db); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}
	log.Println("Database ping successful")

	if cfg.SeedOnStart {
		if _, err := seed.Run(context.Background(), db, cfg.BcryptCost); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	gin.SetMode(cfg.GinMode)
	server := gin.Default()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		server.Use(api.CORS(cfg.CORS))
		log.Printf("CORS enabled for %v", cfg.CORS.AllowedOrigins)
	}
	api.NewHandler(db).RegisterRoutes(server)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Travel API service starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down travel API service...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
