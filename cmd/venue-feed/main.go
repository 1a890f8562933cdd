package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ms-venue/internal/config"
	"ms-venue/internal/kafka"
	"ms-venue/internal/logger"
	"ms-venue/internal/simulator"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// venue-feed tails the match events topic and prints a live commentary.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.LogDir, "venue-feed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	groupID := os.Getenv("KAFKA_GROUP_ID")
	if groupID == "" {
		groupID = "venue-feed"
	}
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.MatchEvents, groupID, log)
	defer consumer.Close()

	log.Info("KAFKA", fmt.Sprintf("Tailing %s as %s", cfg.Kafka.Topics.MatchEvents, groupID))
	if err := consumer.Start(ctx, func(env kafka.Envelope) { printEvent(log, env) }); err != nil && ctx.Err() == nil {
		log.Error("KAFKA", fmt.Sprintf("Consumer stopped: %v", err))
	}
}

func printEvent(log *logger.Logger, env kafka.Envelope) {
	var ev simulator.Event
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		log.Error("KAFKA", fmt.Sprintf("Bad %s payload: %v", env.Type, err))
		return
	}
	switch ev.Kind {
	case simulator.EventGoal:
		color.New(color.FgGreen, color.Bold).Printf("%2d' GOAL %s - %s (%d-%d)\n", ev.Minute, ev.Team, ev.Player, ev.HomeGoals, ev.AwayGoals)
	case simulator.EventHalftime:
		color.Yellow("HT %d-%d", ev.HomeGoals, ev.AwayGoals)
	case simulator.EventFullTime:
		color.Cyan("FT %d-%d", ev.HomeGoals, ev.AwayGoals)
	case simulator.EventMinute:
	default:
		fmt.Printf("%2d' %s\n", ev.Minute, ev.Kind)
	}
}
