package main

import (
	"context"
	"log"

	"github.com/deck-app/deck-account-backend/config"
	"github.com/deck-app/deck-account-backend/internal/accounts/repository"
	"github.com/deck-app/deck-account-backend/internal/bootstrap"
	"github.com/deck-app/deck-account-backend/internal/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	fb, err := bootstrap.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Firestore.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if redisClient == nil {
		log.Println("REDIS_ADDR not set, using in-process rate limiting")
	}

	sweeper := reconcile.NewSweeper(
		repository.NewIdentityRepository(fb.Auth),
		repository.NewProfileRepository(fb.Firestore),
		cfg.Sweep.PageSize,
	)
	scheduler, err := sweeper.Start(cfg.Sweep.Schedule)
	if err != nil {
		log.Fatalf("reconcile scheduler: %v", err)
	}
	if scheduler != nil {
		defer scheduler.Stop()
		log.Printf("reconcile sweep scheduled: %q", cfg.Sweep.Schedule)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "deck-account-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPM:   cfg.Server.RateLimitRPM,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Firebase:       fb,
		Redis:          redisClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
