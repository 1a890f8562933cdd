package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ms-venue/internal/config"
	"ms-venue/internal/logger"
	"ms-venue/internal/report"
	"ms-venue/internal/seed"
	"ms-venue/internal/simulator"
	"ms-venue/internal/venue"

	"github.com/joho/godotenv"
)

// crowd is the scripted batch of supporters registered before kickoff.
var crowd = []struct {
	in     venue.AccountInput
	sector string
	seat   int
	order  map[string]int
}{
	{venue.AccountInput{Name: "Maria Silva", Age: 34, Document: "12345678", Address: "Rua Augusta 10, Lisboa", Balance: 120}, "A", 5, map[string]int{"Bifana": 2, "Cerveja": 2}},
	{venue.AccountInput{Name: "João Costa", Age: 28, Document: "23456789", Address: "Avenida da Liberdade 200, Lisboa", Balance: 80}, "B", 12, map[string]int{"Cerveja": 3}},
	{venue.AccountInput{Name: "Ana Ferreira", Age: 45, Document: "34567890", Address: "Rua do Ouro 7, Lisboa", Balance: 60}, "C", 1, map[string]int{"Água": 1, "Pipocas": 2}},
	{venue.AccountInput{Name: "Rui Santos", Age: 19, Document: "45678901", Address: "Praça do Comércio 1, Lisboa", Balance: 55}, "D", 25, map[string]int{"Bifana": 1}},
	{venue.AccountInput{Name: "Carla Mendes", Age: 52, Document: "56789012", Address: "Rua da Prata 33, Lisboa", Balance: 40}, "A", 6, nil},
}

func main() {
	minuteDelay := flag.Duration("minute", 10*time.Millisecond, "wall-clock length of one match minute")
	halftime := flag.Duration("halftime", 50*time.Millisecond, "half-time pause")
	seedFlag := flag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewWithWriter(os.Stderr)
	log.SetLevel(logger.WARN)

	if err := run(cfg, log, *minuteDelay, *halftime, *seedFlag); err != nil {
		fmt.Fprintf(os.Stderr, "venue-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, minuteDelay, halftime time.Duration, seedValue uint64) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if seedValue == 0 {
		seedValue = uint64(time.Now().UnixNano())
	}
	rng := simulator.NewRand(seedValue)

	sectors := make([]venue.SectorSpec, 0, len(cfg.Venue.Sectors))
	for _, s := range cfg.Venue.Sectors {
		sectors = append(sectors, venue.SectorSpec{Code: s.Code, Price: s.Price})
	}
	v, err := venue.New(venue.Config{
		Name:           cfg.Venue.Name,
		Location:       cfg.Venue.Location,
		Sectors:        sectors,
		Rows:           cfg.Venue.Rows,
		Cols:           cfg.Venue.Cols,
		MaxStands:      cfg.Venue.MaxStands,
		MinimumBalance: cfg.Venue.MinimumBalance,
	}, venue.WithIDSource(rng), venue.WithLogger(log))
	if err != nil {
		return err
	}

	home, away, err := seed.Teams()
	if err != nil {
		return err
	}
	match, err := v.ScheduleMatch(home, away, time.Now(), cfg.Match.Referee)
	if err != nil {
		return err
	}
	stand, err := v.AddStand("Bancada Central", seed.StandMenu()...)
	if err != nil {
		return err
	}
	if err := v.OpenStand(stand.ID()); err != nil {
		return err
	}
	menu := make(map[string]int)
	for _, p := range stand.Products() {
		menu[p.Name()] = p.ID()
	}

	for _, c := range crowd {
		acc, err := v.RegisterAccount(ctx, c.in)
		if err != nil {
			fmt.Printf("registration refused for %s: %v\n", c.in.Name, err)
			continue
		}
		t, err := v.PurchaseTicket(ctx, acc.ID(), c.sector, c.seat)
		if err != nil {
			fmt.Printf("%s could not buy %s%d: %v\n", acc.ID(), c.sector, c.seat, err)
			continue
		}
		fmt.Printf("%s bought %s (%s) for %.2f\n", acc.ID(), t.ID, t.SeatDescription, t.Price)

		if len(c.order) == 0 {
			continue
		}
		cart := venue.NewCart()
		for name, qty := range c.order {
			if err := cart.Add(menu[name], qty); err != nil {
				return err
			}
		}
		rc, err := v.Checkout(ctx, acc.ID(), stand.ID(), cart)
		if err != nil {
			fmt.Printf("%s checkout refused: %v\n", acc.ID(), err)
			continue
		}
		fmt.Printf("%s paid %.2f at %s, balance %.2f\n", acc.ID(), rc.Total, rc.Stand, rc.Balance)
	}

	sim := simulator.New(match, v,
		simulator.WithRand(rng),
		simulator.WithMinuteDelay(minuteDelay),
		simulator.WithHalftimePause(halftime),
		simulator.WithGoalProbability(cfg.Match.GoalProbability),
		simulator.WithLogger(log),
		simulator.WithSink(printer{}),
	)
	if err := sim.Run(ctx); err != nil {
		return err
	}

	fmt.Println()
	report.Render(os.Stdout, report.Build(v))
	return nil
}

type printer struct{}

func (printer) HandleMatchEvent(_ context.Context, ev simulator.Event) error {
	switch ev.Kind {
	case simulator.EventKickoff:
		fmt.Println("Kick-off!")
	case simulator.EventGoal:
		fmt.Printf("%d' GOAL %s (%s) %d-%d\n", ev.Minute, ev.Team, ev.Player, ev.HomeGoals, ev.AwayGoals)
	case simulator.EventHalftime:
		fmt.Printf("Half-time %d-%d", ev.HomeGoals, ev.AwayGoals)
		if ev.Snapshot != nil {
			fmt.Printf(", occupancy %.1f%%, stand revenue %.2f", ev.Snapshot.OccupancyPct, ev.Snapshot.StandRevenue)
		}
		fmt.Println()
	case simulator.EventFullTime:
		fmt.Printf("Full-time %d-%d\n", ev.HomeGoals, ev.AwayGoals)
	}
	return nil
}
