package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/tilemaker-app/tilemaker-backend/config"
	"github.com/tilemaker-app/tilemaker-backend/internal/auth"
	"github.com/tilemaker-app/tilemaker-backend/internal/bootstrap"
	"github.com/tilemaker-app/tilemaker-backend/internal/images"
	"github.com/tilemaker-app/tilemaker-backend/internal/maintenance"
	"github.com/tilemaker-app/tilemaker-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("open sql db: %v", err)
	}
	defer sqlDB.Close()

	if err := postgres.Migrate(ctx, sqlDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := cache.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, image cache disabled: %v", err)
			cache = nil
		}
	}

	var blob *images.BlobStore
	if cfg.Images.Backend == "s3" {
		blob, err = images.NewBlobStore(ctx, cfg.Images.S3Bucket, cfg.Images.S3Region)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
	}

	sched := maintenance.NewScheduler(sqlDB, cfg.Maintenance.OrphanRetention)
	sched.Start()
	defer sched.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "tilemaker-api",
		Version:       cfg.App.Version,
		ImagesBackend: cfg.Images.Backend,
		DB:            pool,
		Auth:          authClient,
		ImageStore:    images.NewStore(sqlDB, cfg.Upload.MaxBytes),
		Blob:          blob,
		ImageCache:    cache,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
