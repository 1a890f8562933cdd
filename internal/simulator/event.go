package simulator

import (
	"time"

	"ms-venue/internal/venue"
)

type EventKind string

const (
	EventKickoff    EventKind = "kickoff"
	EventMinute     EventKind = "minute"
	EventGoal       EventKind = "goal"
	EventHalftime   EventKind = "halftime"
	EventSecondHalf EventKind = "second_half"
	EventFullTime   EventKind = "full_time"
)

// Event is one entry of the match feed.
type Event struct {
	ID        string                  `json:"id"`
	Kind      EventKind               `json:"kind"`
	Minute    int                     `json:"minute"`
	Side      venue.Side              `json:"side,omitempty"`
	Team      string                  `json:"team,omitempty"`
	Player    string                  `json:"player,omitempty"`
	HomeGoals int                     `json:"home_goals"`
	AwayGoals int                     `json:"away_goals"`
	Snapshot  *venue.IntervalSnapshot `json:"snapshot,omitempty"`
	At        time.Time               `json:"at"`
}
