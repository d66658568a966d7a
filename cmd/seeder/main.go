package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/feed"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/seed"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required to seed")
	}
	if cfg.SeedWorkers <= 0 {
		cfg.SeedWorkers = 1
	}
	log.Info().
		Str("feed", cfg.FeedBase).
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	// one job per hotel; the feed is preferred when configured
	var jobs []func(context.Context) error
	var ing *app.IngestionService
	if cfg.FeedBase != "" {
		client, err := feed.New(cfg.FeedBase, cfg.FeedKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize feed client")
		}
		ing = app.NewIngestionService(client, repo, cache)
		ids, err := client.HotelIDs(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("list feed hotels failed")
		}
		for _, id := range ids {
			id := id
			jobs = append(jobs, func(ctx context.Context) error { return ing.IngestHotel(ctx, id) })
		}
	} else {
		c, err := seed.Source{Path: cfg.SeedFile}.LoadCatalog(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("load seed file failed")
		}
		ing = app.NewIngestionService(nil, repo, cache)
		reviews := app.GroupReviews(c.Reviews)
		for _, h := range c.Hotels {
			h := h
			jobs = append(jobs, func(ctx context.Context) error { return ing.StoreHotel(ctx, h, reviews[h.ID]) })
		}
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for i, job := range jobs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, run func(context.Context) error) {
			defer wg.Done()
			defer sem.Release(1)

			if err := run(ctx); err != nil {
				failed.Add(1)
				log.Warn().Int("job", n).Err(err).Msg("seed failed")
				return
			}
			log.Debug().Int("job", n).Msg("seed ok")
		}(i, job)
	}

	wg.Wait()
	log.Info().Int("hotels", len(jobs)).Int32("failed", failed.Load()).Msg("seeding completed")
}
