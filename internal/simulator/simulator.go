package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"ms-venue/internal/venue"

	"github.com/google/uuid"
)

const (
	FullTime    = 90
	HalfTime    = 45
	GoalEvery   = 10
	DefaultGoal = 0.10

	DefaultMinuteDelay   = time.Second
	DefaultHalftimePause = 2 * time.Second
)

var (
	ErrInterrupted = errors.New("match simulation interrupted")
	ErrBusy        = errors.New("match simulation already running")
)

// Sleeper is a cancellable pause. It returns ctx.Err() when cancelled first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Rand is the randomness the simulator draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a seeded source so runs can be reproduced.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Snapshotter provides the half-time venue figures.
type Snapshotter interface {
	IntervalSnapshot() venue.IntervalSnapshot
}

// Sink receives every event the simulator emits. Errors are logged and the match goes on.
type Sink interface {
	HandleMatchEvent(ctx context.Context, ev Event) error
}

// Locker guards a match against a second concurrent simulation, possibly in another process.
type Locker interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

type Logger interface {
	Info(category, message string)
	Warn(category, message string)
	Error(category, message string)
}

type nopLogger struct{}

func (nopLogger) Info(string, string)  {}
func (nopLogger) Warn(string, string)  {}
func (nopLogger) Error(string, string) {}

type Option func(*Simulator)

func WithSleeper(s Sleeper) Option             { return func(sim *Simulator) { sim.sleeper = s } }
func WithRand(r Rand) Option                   { return func(sim *Simulator) { sim.rng = r } }
func WithMinuteDelay(d time.Duration) Option   { return func(sim *Simulator) { sim.minuteDelay = d } }
func WithHalftimePause(d time.Duration) Option { return func(sim *Simulator) { sim.halftimePause = d } }
func WithGoalProbability(p float64) Option     { return func(sim *Simulator) { sim.goalProbability = p } }
func WithSink(s Sink) Option                   { return func(sim *Simulator) { sim.sinks = append(sim.sinks, s) } }
func WithLogger(l Logger) Option               { return func(sim *Simulator) { sim.log = l } }
func WithClock(now func() time.Time) Option    { return func(sim *Simulator) { sim.now = now } }

// WithLocker makes Run hold key for the whole simulation.
func WithLocker(l Locker, key string) Option {
	return func(sim *Simulator) {
		sim.locker = l
		sim.lockKey = key
	}
}

// Simulator drives a match through a virtual 90-minute clock.
type Simulator struct {
	match *venue.Match
	venue Snapshotter

	sleeper         Sleeper
	rng             Rand
	minuteDelay     time.Duration
	halftimePause   time.Duration
	goalProbability float64
	sinks           []Sink
	log             Logger
	now             func() time.Time
	locker          Locker
	lockKey         string

	mu      sync.Mutex
	running bool
	minute  int
}

func New(match *venue.Match, snap Snapshotter, opts ...Option) *Simulator {
	s := &Simulator{
		match:           match,
		venue:           snap,
		sleeper:         timerSleeper{},
		rng:             NewRand(uint64(time.Now().UnixNano())),
		minuteDelay:     DefaultMinuteDelay,
		halftimePause:   DefaultHalftimePause,
		goalProbability: DefaultGoal,
		log:             nopLogger{},
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Minute is the last virtual minute the clock reached.
func (s *Simulator) Minute() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minute
}

// Run plays the match to the final whistle. A cancelled ctx stops it at the next
// pause: the match stays running and unfinished, with the goals scored so far.
func (s *Simulator) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrBusy
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if s.locker != nil {
		token, ok, err := s.locker.Acquire(ctx, s.lockKey)
		if err != nil {
			return fmt.Errorf("acquire match lock %s: %w", s.lockKey, err)
		}
		if !ok {
			return fmt.Errorf("match lock %s held elsewhere: %w", s.lockKey, ErrBusy)
		}
		defer func() {
			// The run context may already be cancelled.
			if err := s.locker.Release(context.Background(), s.lockKey, token); err != nil {
				s.log.Error("MATCH", fmt.Sprintf("Failed to release match lock %s: %v", s.lockKey, err))
			}
		}()
	}

	if err := s.match.Start(); err != nil {
		return err
	}
	s.log.Info("MATCH", fmt.Sprintf("%s VS %s, referee %s", s.match.Home().Name, s.match.Away().Name, s.match.Referee()))

	for minute := 1; minute <= FullTime; minute++ {
		if err := s.sleeper.Sleep(ctx, s.minuteDelay); err != nil {
			return s.interrupted(minute, err)
		}
		s.mu.Lock()
		s.minute = minute
		s.mu.Unlock()

		if err := s.step(ctx, minute); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) step(ctx context.Context, minute int) error {
	happened := false

	if minute%GoalEvery == 0 {
		for _, side := range []venue.Side{venue.Home, venue.Away} {
			if s.rng.Float64() >= s.goalProbability {
				continue
			}
			if err := s.goal(ctx, side, minute); err != nil {
				return err
			}
			happened = true
		}
	}

	switch minute {
	case 1:
		s.emit(ctx, Event{Kind: EventKickoff, Minute: minute})
		happened = true
	case HalfTime:
		snap := s.venue.IntervalSnapshot()
		s.log.Info("MATCH", fmt.Sprintf("Half-time: occupancy %.2f%% (%d/%d), open stands %d, stand revenue %.2f",
			snap.OccupancyPct, snap.Occupied, snap.Capacity, snap.OpenStands, snap.StandRevenue))
		s.emit(ctx, Event{Kind: EventHalftime, Minute: minute, Snapshot: &snap})
		if err := s.sleeper.Sleep(ctx, s.halftimePause); err != nil {
			return s.interrupted(minute, err)
		}
		happened = true
	case HalfTime + 1:
		s.emit(ctx, Event{Kind: EventSecondHalf, Minute: minute})
		happened = true
	case FullTime:
		if err := s.match.Finish(); err != nil {
			return err
		}
		s.log.Info("MATCH", "Full time: "+s.match.Result())
		s.emit(ctx, Event{Kind: EventFullTime, Minute: minute})
		happened = true
	}

	if !happened {
		s.emit(ctx, Event{Kind: EventMinute, Minute: minute})
	}
	return nil
}

func (s *Simulator) goal(ctx context.Context, side venue.Side, minute int) error {
	roster := s.match.Team(side).Roster()
	player := "unknown"
	if len(roster) > 0 {
		player = roster[s.rng.IntN(len(roster))]
	}
	g, err := s.match.RecordGoal(side, minute, player)
	if err != nil {
		return err
	}
	s.log.Info("MATCH", fmt.Sprintf("%d' GOAL! %s scores (%s) - %s", minute, g.Team, s.match.Scoreline(), g.Player))
	s.emit(ctx, Event{Kind: EventGoal, Minute: minute, Side: side, Team: g.Team, Player: g.Player})
	return nil
}

func (s *Simulator) emit(ctx context.Context, ev Event) {
	ev.ID = uuid.NewString()
	ev.At = s.now()
	ev.HomeGoals, ev.AwayGoals = s.match.Score()
	for _, sink := range s.sinks {
		if err := sink.HandleMatchEvent(ctx, ev); err != nil {
			s.log.Error("MATCH", fmt.Sprintf("Failed to deliver %s event at %d': %v", ev.Kind, ev.Minute, err))
		}
	}
}

func (s *Simulator) interrupted(minute int, cause error) error {
	s.log.Warn("MATCH", fmt.Sprintf("Simulation interrupted at minute %d: %v", minute, cause))
	return fmt.Errorf("%w at minute %d: %w", ErrInterrupted, minute, cause)
}
