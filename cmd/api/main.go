package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/events"
	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/adapters/security"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/seed"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// promotions always come from the fixture; hotels come from MySQL when configured
	fixture := seed.Source{Path: cfg.SeedFile}
	promos, err := fixture.LoadCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed catalog failed")
	}
	var source domain.CatalogSource = fixture
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		source = mysqlrepo.New(db)
	}
	catalog, err := source.LoadCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog failed")
	}

	// optional collaborators
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, caching disabled")
		} else {
			defer rc.Close()
			cache = rc
		}
	}
	var pub domain.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		np, err := events.NewNATS(cfg.NATSURL)
		if err != nil {
			log.Warn().Err(err).Msg("nats unavailable, notifications stay local")
		} else {
			pub = np
		}
	}
	defer pub.Close()

	boot := time.Now().UTC()
	engine := app.New(app.Deps{
		Users:         memory.NewUsers(),
		Sessions:      memory.NewSessions(),
		Hotels:        memory.NewHotels(),
		Bookings:      memory.NewBookings(),
		Reviews:       memory.NewReviews(),
		Favorites:     memory.NewFavorites(),
		Notifications: memory.NewNotifications(),
		Deals:         memory.NewDeals(promos.Deals, promos.Trending, seed.LastMinute(promos, boot)),
		Hasher:        security.NewArgon2(nil),
		Locker:        memory.NewKeyLock(),
		Cache:         cache,
		Publisher:     pub,
		Pricing:       app.PricingPolicy{ServiceFee: cfg.ServiceFee, TaxPercent: cfg.TaxPercent},
		SessionTTL:    cfg.SessionTTL,
		ResetTTL:      cfg.ResetTTL,
		CacheTTL:      cfg.CacheTTL,
	})
	if err := engine.Seed(ctx, catalog); err != nil {
		log.Fatal().Err(err).Msg("seed engine failed")
	}
	log.Info().Int("hotels", len(catalog.Hotels)).Int("reviews", len(catalog.Reviews)).Msg("catalog loaded")

	// http
	srv := server.New(server.Options{
		Timeout:     cfg.RequestTimeout,
		CORSOrigins: cfg.CORSOrigins,
		AuthRPS:     cfg.AuthRPS,
		AuthBurst:   cfg.AuthBurst,
	})
	srv.MountHandlers(&server.Handlers{E: engine, Env: cfg.AppEnv})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdown)
	}()
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
