package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MatchEvent struct {
	bun.BaseModel `bun:"table:match_events"`

	EventID   string    `bun:"event_id,pk" json:"event_id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	Kind      string    `bun:"kind,notnull" json:"kind"`
	Minute    int       `bun:"minute" json:"minute"`
	Side      string    `bun:"side" json:"side,omitempty"`
	Team      string    `bun:"team" json:"team,omitempty"`
	Player    string    `bun:"player" json:"player,omitempty"`
	HomeGoals int       `bun:"home_goals" json:"home_goals"`
	AwayGoals int       `bun:"away_goals" json:"away_goals"`
	Occupancy float64   `bun:"occupancy_pct,nullzero" json:"occupancy_pct,omitempty"`
	At        time.Time `bun:"at" json:"at"`
}
