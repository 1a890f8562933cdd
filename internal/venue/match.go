package venue

import (
	"fmt"
	"sync"
	"time"
)

type MatchState string

const (
	MatchScheduled MatchState = "scheduled"
	MatchRunning   MatchState = "running"
	MatchFinished  MatchState = "finished"
)

type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// ResultPending is reported instead of a score until the match is finished.
const ResultPending = "not yet decided"

// Goal is one scorer record.
type Goal struct {
	Minute int    `json:"minute"`
	Side   Side   `json:"side"`
	Team   string `json:"team"`
	Player string `json:"player"`
}

// Match is the scheduled game. Score and scorers are frozen once finished.
type Match struct {
	mu sync.RWMutex

	home, away  *Team
	scheduledAt time.Time
	referee     string

	state     MatchState
	homeGoals int
	awayGoals int
	scorers   []Goal
	tickets   []Ticket
}

func newMatch(home, away *Team, at time.Time, referee string) *Match {
	return &Match{
		home:        home,
		away:        away,
		scheduledAt: at,
		referee:     referee,
		state:       MatchScheduled,
	}
}

func (m *Match) Home() *Team            { return m.home }
func (m *Match) Away() *Team            { return m.away }
func (m *Match) ScheduledAt() time.Time { return m.scheduledAt }
func (m *Match) Referee() string        { return m.referee }

func (m *Match) Team(side Side) *Team {
	if side == Away {
		return m.away
	}
	return m.home
}

func (m *Match) State() MatchState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Match) Finished() bool {
	return m.State() == MatchFinished
}

// Start moves a scheduled match to running. It can happen once.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MatchScheduled {
		return fmt.Errorf("start match in state %s: %w", m.state, ErrMatchState)
	}
	m.state = MatchRunning
	return nil
}

// RecordGoal increments the side's counter and appends the scorer.
func (m *Match) RecordGoal(side Side, minute int, player string) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MatchRunning {
		return Goal{}, fmt.Errorf("record goal in state %s: %w", m.state, ErrMatchState)
	}
	g := Goal{Minute: minute, Side: side, Team: m.Team(side).Name, Player: player}
	if side == Away {
		m.awayGoals++
	} else {
		m.homeGoals++
	}
	m.scorers = append(m.scorers, g)
	return g, nil
}

// Finish freezes the score.
func (m *Match) Finish() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MatchRunning {
		return fmt.Errorf("finish match in state %s: %w", m.state, ErrMatchState)
	}
	m.state = MatchFinished
	return nil
}

// Score returns the running counters. They only mean something once the match started.
func (m *Match) Score() (home, away int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.homeGoals, m.awayGoals
}

// Scoreline renders the current score regardless of state.
func (m *Match) Scoreline() string {
	h, a := m.Score()
	return fmt.Sprintf("%s %d - %d %s", m.home.Name, h, a, m.away.Name)
}

// Result renders the final score, or ResultPending before the final whistle.
func (m *Match) Result() string {
	if !m.Finished() {
		return ResultPending
	}
	return m.Scoreline()
}

func (m *Match) Scorers() []Goal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Goal(nil), m.scorers...)
}

func (m *Match) addTicket(t Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, t)
}

// Tickets returns the tickets sold while this match was scheduled.
func (m *Match) Tickets() []Ticket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Ticket(nil), m.tickets...)
}

// BoxOffice is the sum paid for this match's tickets.
func (m *Match) BoxOffice() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0.0
	for _, t := range m.tickets {
		total += t.Price
	}
	return total
}
