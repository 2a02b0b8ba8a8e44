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
	"golang.org/x/sync/errgroup"

	"cleaning_booking/internal/adapters/bookingapi"
	server "cleaning_booking/internal/adapters/http_server"
	"cleaning_booking/internal/adapters/observability"
	redisad "cleaning_booking/internal/adapters/redis"
	"cleaning_booking/internal/app"
	"cleaning_booking/internal/shared"
	mysqlrepo "cleaning_booking/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	rdb := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	api, err := bookingapi.New(cfg.BookingAPIBase, cfg.BookingAPIRPS, cfg.BookingAPITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking API client")
	}

	// deps
	attempts := mysqlrepo.New(db)
	cache := redisad.NewCache(rdb)
	sessions := redisad.NewSessionStore(rdb, cfg.ScratchTTL)
	submitter := app.NewSubmitter(api, attempts, cache)
	queries := app.NewBookingQueryService(api, attempts, cache, cfg.CacheTTL)

	// http
	reg := observability.InitRegistry()
	srv := server.New(cfg.BookingAPITimeout + 10*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Submitter: submitter, Queries: queries, Sessions: sessions})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	metricsSrv := observability.NewMetricsServer(cfg.MetricsAddr, observability.MetricsHandler(reg))

	g, gctx := errgroup.WithContext(ctx)
	for name, s := range map[string]*http.Server{"api": httpSrv, "metrics": metricsSrv} {
		name, s := name, s
		g.Go(func() error {
			log.Info().Str("server", name).Str("addr", s.Addr).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return errors.Join(httpSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("shutdown complete")
}
