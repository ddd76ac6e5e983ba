package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/config"
	"github.com/nejmigmc-soft/landmarkweb/database"
	"github.com/nejmigmc-soft/landmarkweb/routes"
	"github.com/nejmigmc-soft/landmarkweb/services"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

func main() {
	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init loggers: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	log.Println("Seed complete (if needed)")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis")

	uploads, err := services.NewUploadService(cfg)
	if err != nil {
		log.Printf("Upload signing disabled: %v", err)
		uploads = nil
	}

	currencyService := services.NewCurrencyService(db, rdb)
	currencyParser := services.NewCurrencyParser(cfg.CurrencySourceURL)
	currencyCron := services.StartCurrencyCron(currencyParser, currencyService)

	r := routes.SetupRouter(cfg, db, rdb, uploads)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests and close
	// every handle the process opened.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}

	currencyCron.Stop()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()

	log.Println("Shutdown complete")
}
