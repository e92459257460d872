package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/harwoodcarpentry/tracker-backend/config"
	"github.com/harwoodcarpentry/tracker-backend/internal/api/http/routes"
	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/cache"
	cronjob "github.com/harwoodcarpentry/tracker-backend/internal/tracking/cron"
	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/repository"
	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	repo := repository.NewProjectRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	var projCache service.ProjectCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		projCache = cache.NewProjectCache(rdb, cfg.Redis.CacheTTL)
		log.Printf("project cache enabled (redis %s)", cfg.Redis.Addr)
	}

	svc := service.NewProjectService(repo, projCache)

	scheduler := cronjob.NewScheduler(svc)
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.Register(r, routes.Deps{Cfg: cfg, DB: pool, Svc: svc})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
