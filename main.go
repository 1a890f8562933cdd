package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ms-venue/internal/api"
	"ms-venue/internal/config"
	"ms-venue/internal/kafka"
	"ms-venue/internal/lock"
	"ms-venue/internal/logger"
	"ms-venue/internal/seed"
	"ms-venue/internal/simulator"
	"ms-venue/internal/sse"
	"ms-venue/internal/storage"
	"ms-venue/internal/tickets/qr"
	"ms-venue/internal/venue"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.LogDir, "venue-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("APP", "Starting Venue Service initialization")
	if envErr != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	qrGen := qr.NewQRGenerator(cfg.QR.Secret)
	var venueOpts []venue.Option
	venueOpts = append(venueOpts, venue.WithLogger(log))

	var recorder *storage.Recorder
	if cfg.Database.Enabled {
		bunDB := mustOpenDatabase(ctx, cfg.Database, log)
		defer bunDB.Close()
		var enc storage.QREncoder
		if cfg.QR.Enabled {
			enc = qrGen
		}
		recorder = storage.NewRecorder(&storage.DB{Bun: bunDB}, enc, log)
		venueOpts = append(venueOpts, venue.WithSink(recorder))
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		if !cfg.Kafka.MockMode {
			if err := kafka.EnsureTopicsExist(ctx, cfg.Kafka.Brokers, kafka.Topics(cfg.Kafka.Topics), log); err != nil {
				log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
			}
		}
		producer = kafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		venueOpts = append(venueOpts, venue.WithSink(producer))
		log.Info("KAFKA", fmt.Sprintf("Kafka producer initialized (mock=%t)", cfg.Kafka.MockMode))
	}
	if cfg.Venue.Seed != 0 {
		venueOpts = append(venueOpts, venue.WithIDSource(simulator.NewRand(cfg.Venue.Seed)))
	}

	v, err := venue.New(venueConfig(cfg.Venue), venueOpts...)
	if err != nil {
		log.Fatal("VENUE", fmt.Sprintf("Invalid venue configuration: %v", err))
	}
	log.Info("VENUE", fmt.Sprintf("%s (%d) at %s, capacity %d", v.Name(), v.ID(), v.Location(), v.Capacity()))

	home, away, err := seed.Teams()
	if err != nil {
		log.Fatal("VENUE", err.Error())
	}
	if _, err := v.ScheduleMatch(home, away, cfg.Match.KickoffAt, cfg.Match.Referee); err != nil {
		log.Fatal("VENUE", fmt.Sprintf("Failed to schedule match: %v", err))
	}
	stand, err := v.AddStand("Bancada Central", seed.StandMenu()...)
	if err != nil {
		log.Fatal("VENUE", fmt.Sprintf("Failed to add stand: %v", err))
	}
	if err := v.OpenStand(stand.ID()); err != nil {
		log.Fatal("VENUE", err.Error())
	}

	var locker simulator.Locker
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("REDIS", fmt.Sprintf("Redis connection error: %v", err))
		}
		locker = lock.NewRedis(client, cfg.Redis.LockTTL)
		log.Info("REDIS", fmt.Sprintf("Match lock enabled on %s", cfg.Redis.Addr))
	}

	events := sse.NewMatchEventEmitter()
	factory := func(m *venue.Match) *simulator.Simulator {
		opts := []simulator.Option{
			simulator.WithMinuteDelay(cfg.Match.MinuteDelay),
			simulator.WithHalftimePause(cfg.Match.HalftimePause),
			simulator.WithGoalProbability(cfg.Match.GoalProbability),
			simulator.WithLogger(log),
			simulator.WithSink(events),
		}
		if cfg.Venue.Seed != 0 {
			opts = append(opts, simulator.WithRand(simulator.NewRand(cfg.Venue.Seed)))
		}
		if recorder != nil {
			opts = append(opts, simulator.WithSink(recorder.MatchSink(v.ID())))
		}
		if producer != nil {
			opts = append(opts, simulator.WithSink(producer.MatchSink(v.ID())))
		}
		if locker != nil {
			opts = append(opts, simulator.WithLocker(locker, fmt.Sprint(v.ID())))
		}
		return simulator.New(m, v, opts...)
	}

	handler := api.NewHandler(v, log, events, qrGen, factory)
	handler.BaseContext = ctx

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Venue Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	}
	handler.Wait()
	log.Info("HTTP", "Venue Service shutdown complete")
}

func mustOpenDatabase(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	bunDB, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	if err := storage.CreateSchema(ctx, bunDB); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to create schema: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("%s connection successful", cfg.Driver))
	return bunDB
}

func venueConfig(c config.VenueConfig) venue.Config {
	sectors := make([]venue.SectorSpec, 0, len(c.Sectors))
	for _, s := range c.Sectors {
		sectors = append(sectors, venue.SectorSpec{Code: s.Code, Price: s.Price})
	}
	return venue.Config{
		Name:           c.Name,
		Location:       c.Location,
		Sectors:        sectors,
		Rows:           c.Rows,
		Cols:           c.Cols,
		MaxStands:      c.MaxStands,
		MinimumBalance: c.MinimumBalance,
	}
}
