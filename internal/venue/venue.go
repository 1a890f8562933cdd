package venue

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// DefaultMaxStands is the most concession stands a venue can hold.
const DefaultMaxStands = 5

// SectorSpec describes one sector created at venue initialization.
type SectorSpec struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
}

// DefaultSectors are the four reference sectors.
func DefaultSectors() []SectorSpec {
	return []SectorSpec{
		{Code: "A", Price: 10.0},
		{Code: "B", Price: 20.0},
		{Code: "C", Price: 30.0},
		{Code: "D", Price: 40.0},
	}
}

type Config struct {
	Name           string
	Location       string
	Sectors        []SectorSpec
	Rows           int
	Cols           int
	MaxStands      int
	MinimumBalance float64
}

// Logger is the subset of the service logger the venue writes to.
type Logger interface {
	Info(category, message string)
	Error(category, message string)
}

type nopLogger struct{}

func (nopLogger) Info(string, string)  {}
func (nopLogger) Error(string, string) {}

// Sink receives committed transactions. A failing sink is logged and never undoes
// the transaction it was told about.
type Sink interface {
	AccountRegistered(ctx context.Context, venueID int64, p Profile) error
	TicketSold(ctx context.Context, venueID int64, accountID string, t Ticket) error
	ConcessionSold(ctx context.Context, venueID int64, r Receipt) error
}

// IDSource draws the venue's display id.
type IDSource interface {
	Int64N(n int64) int64
}

type globalRand struct{}

func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }

type Option func(*Venue)

func WithIDSource(src IDSource) Option {
	return func(v *Venue) { v.ids = src }
}

func WithSink(s Sink) Option {
	return func(v *Venue) { v.sinks = append(v.sinks, s) }
}

func WithLogger(l Logger) Option {
	return func(v *Venue) { v.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(v *Venue) { v.now = now }
}

// Venue is the aggregate root. It owns sectors, stands, accounts, the sold-ticket
// ledger and at most one match, and serializes every mutation behind one mutex.
type Venue struct {
	mu sync.Mutex

	id       int64
	name     string
	location string

	sectors        []*Sector
	stands         []*Stand
	accounts       []*Account
	sold           []Ticket
	match          *Match
	maxStands      int
	minimumBalance float64
	nextAccount    int

	ids   IDSource
	sinks []Sink
	log   Logger
	now   func() time.Time
}

func New(cfg Config, opts ...Option) (*Venue, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, validationError("venue name must not be blank")
	}
	if len(cfg.Sectors) == 0 {
		cfg.Sectors = DefaultSectors()
	}
	if cfg.Rows <= 0 {
		cfg.Rows = DefaultRows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = DefaultCols
	}
	if cfg.MaxStands <= 0 {
		cfg.MaxStands = DefaultMaxStands
	}
	if cfg.MinimumBalance <= 0 {
		cfg.MinimumBalance = DefaultMinimumBalance
	}

	v := &Venue{
		name:           strings.TrimSpace(cfg.Name),
		location:       strings.TrimSpace(cfg.Location),
		maxStands:      cfg.MaxStands,
		minimumBalance: cfg.MinimumBalance,
		nextAccount:    1,
		ids:            globalRand{},
		log:            nopLogger{},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	seen := make(map[string]bool, len(cfg.Sectors))
	for _, spec := range cfg.Sectors {
		s, err := NewSector(spec.Code, spec.Price, cfg.Rows, cfg.Cols)
		if err != nil {
			return nil, err
		}
		key := strings.ToUpper(s.Code())
		if seen[key] {
			return nil, validationError("duplicate sector code %s", s.Code())
		}
		seen[key] = true
		v.sectors = append(v.sectors, s)
	}

	// 10-digit display id, not guaranteed unique.
	v.id = 1_000_000_000 + v.ids.Int64N(9_000_000_000)
	return v, nil
}

func (v *Venue) ID() int64               { return v.id }
func (v *Venue) Name() string            { return v.name }
func (v *Venue) Location() string        { return v.location }
func (v *Venue) MinimumBalance() float64 { return v.minimumBalance }

// Sectors returns the fixed sector list. The pointers are not synchronized; use
// SectorSummaries for reads that may race with purchases.
func (v *Venue) Sectors() []*Sector {
	return append([]*Sector(nil), v.sectors...)
}

// Sector looks a sector up by code, ignoring case and surrounding blanks.
func (v *Venue) Sector(code string) (*Sector, error) {
	code = strings.TrimSpace(code)
	for _, s := range v.sectors {
		if strings.EqualFold(s.code, code) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sector %q: %w", code, ErrNotFound)
}

func (v *Venue) Account(id string) (*Account, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.accountLocked(id)
}

func (v *Venue) accountLocked(id string) (*Account, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, a := range v.accounts {
		if a.ID() == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %q: %w", id, ErrNotFound)
}

func (v *Venue) Stand(id int) (*Stand, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.standLocked(id)
}

func (v *Venue) standLocked(id int) (*Stand, error) {
	for _, s := range v.stands {
		if s.id == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("stand %d: %w", id, ErrNotFound)
}

// RegisterAccount validates the input and creates an account with the next
// sequential id. Ids are never reused.
func (v *Venue) RegisterAccount(ctx context.Context, in AccountInput) (*Account, error) {
	v.mu.Lock()
	a, err := newAccount(AccountID(v.nextAccount), in, v.minimumBalance)
	if err != nil {
		v.mu.Unlock()
		return nil, err
	}
	v.nextAccount++
	v.accounts = append(v.accounts, a)
	profile := a.Profile()
	v.mu.Unlock()

	v.log.Info("ACCOUNT", fmt.Sprintf("Registered %s (%s) with balance %.2f", profile.ID, profile.Name, profile.InitialBalance))
	v.notify(ctx, "account "+profile.ID, func(s Sink) error {
		return s.AccountRegistered(ctx, v.id, profile)
	})
	return a, nil
}

// AddStand appends a new closed stand with the next sequential id. Products are
// stocked before the stand becomes visible.
func (v *Venue) AddStand(name string, products ...ProductSpec) (*Stand, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.stands) >= v.maxStands {
		return nil, fmt.Errorf("venue holds at most %d stands: %w", v.maxStands, ErrCapacityExceeded)
	}
	s, err := NewStand(len(v.stands)+1, name)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if _, err := s.AddProduct(p); err != nil {
			return nil, err
		}
	}
	v.stands = append(v.stands, s)
	v.log.Info("STAND", fmt.Sprintf("Stand %d %q added with %d products", s.id, s.name, len(products)))
	return s, nil
}

func (v *Venue) OpenStand(id int) error {
	return v.setStandOpen(id, true)
}

func (v *Venue) CloseStand(id int) error {
	return v.setStandOpen(id, false)
}

func (v *Venue) setStandOpen(id int, open bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, err := v.standLocked(id)
	if err != nil {
		return err
	}
	if open {
		s.Open()
	} else {
		s.Close()
	}
	v.log.Info("STAND", fmt.Sprintf("Stand %d %q open=%t", s.id, s.name, open))
	return nil
}

// ScheduleMatch creates the venue's match. A running match cannot be replaced.
func (v *Venue) ScheduleMatch(home, away *Team, at time.Time, referee string) (*Match, error) {
	if home == nil || away == nil {
		return nil, validationError("both teams are required")
	}
	if home == away {
		return nil, validationError("a team cannot play itself")
	}
	if len(home.roster) == 0 || len(away.roster) == 0 {
		return nil, validationError("both rosters need at least one player")
	}
	if strings.TrimSpace(referee) == "" {
		return nil, validationError("referee must not be blank")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.match != nil && v.match.State() == MatchRunning {
		return nil, fmt.Errorf("replace running match: %w", ErrMatchState)
	}
	v.match = newMatch(home, away, at, strings.TrimSpace(referee))
	v.log.Info("MATCH", fmt.Sprintf("Scheduled %s vs %s at %s", home.Name, away.Name, at.Format("02/01/2006 15:04")))
	return v.match, nil
}

func (v *Venue) Match() (*Match, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.match == nil {
		return nil, ErrNoMatch
	}
	return v.match, nil
}

// SoldTickets returns the global ledger of sold tickets in sale order.
func (v *Venue) SoldTickets() []Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Ticket(nil), v.sold...)
}

func (v *Venue) notify(ctx context.Context, what string, fn func(Sink) error) {
	for _, s := range v.sinks {
		if err := fn(s); err != nil {
			v.log.Error("SINK", fmt.Sprintf("Failed to record %s: %v", what, err))
		}
	}
}
