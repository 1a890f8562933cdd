package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, []SectorPrice{{"A", 10}, {"B", 20}, {"C", 30}, {"D", 40}}, cfg.Venue.Sectors)
	assert.Equal(t, 5, cfg.Venue.Rows)
	assert.Equal(t, 5, cfg.Venue.MaxStands)
	assert.Equal(t, 10.0, cfg.Venue.MinimumBalance)
	assert.Equal(t, time.Second, cfg.Match.MinuteDelay)
	assert.Equal(t, 0.10, cfg.Match.GoalProbability)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "venue.match.events", cfg.Kafka.Topics.MatchEvents)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VENUE_SECTORS", "N:15, S:25")
	t.Setenv("VENUE_MINIMUM_BALANCE", "2.5")
	t.Setenv("MATCH_MINUTE_DELAY", "10ms")
	t.Setenv("MATCH_KICKOFF", "2025-10-01T18:00:00Z")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, []SectorPrice{{"N", 15}, {"S", 25}}, cfg.Venue.Sectors)
	assert.Equal(t, 2.5, cfg.Venue.MinimumBalance)
	assert.Equal(t, 10*time.Millisecond, cfg.Match.MinuteDelay)
	assert.Equal(t, time.Date(2025, 10, 1, 18, 0, 0, 0, time.UTC), cfg.Match.KickoffAt)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("VENUE_ROWS", "many")
	t.Setenv("MATCH_GOAL_PROBABILITY", "likely")
	t.Setenv("VENUE_SECTORS", "A=10")

	cfg := Load()

	assert.Equal(t, 5, cfg.Venue.Rows)
	assert.Equal(t, 0.10, cfg.Match.GoalProbability)
	assert.Len(t, cfg.Venue.Sectors, 4)
}

func TestParseSectors(t *testing.T) {
	got, err := ParseSectors("VIP:99.5")
	require.NoError(t, err)
	assert.Equal(t, []SectorPrice{{"VIP", 99.5}}, got)

	_, err = ParseSectors("")
	assert.Error(t, err)
	_, err = ParseSectors("A:ten")
	assert.Error(t, err)
}
