package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"ms-venue/internal/venue"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func newVenue(t *testing.T) (*venue.Venue, *venue.Account) {
	t.Helper()
	v, err := venue.New(venue.Config{Name: "Estadio", Location: "Lisboa"})
	require.NoError(t, err)
	a, err := v.RegisterAccount(context.Background(), venue.AccountInput{Name: "Maria", Age: 30, Document: "12345678", Address: "Lisboa", Balance: 200})
	require.NoError(t, err)
	return v, a
}

func TestBuild_NoMatch(t *testing.T) {
	v, a := newVenue(t)
	_, err := v.PurchaseTicket(context.Background(), a.ID(), "D", 1)
	require.NoError(t, err)

	r := Build(v)
	assert.Equal(t, venue.ResultPending, r.Result)
	assert.Empty(t, r.Fixture)
	assert.Equal(t, 1, r.SeatsSold)
	assert.Equal(t, 100, r.Capacity)
	assert.Equal(t, 40.0, r.BoxOffice)
	assert.Equal(t, 40.0, r.TotalRevenue)
	assert.Empty(t, r.Stands)
}

func TestBuild_WithMatchAndStands(t *testing.T) {
	v, a := newVenue(t)
	ctx := context.Background()

	// Sold before the match was scheduled: venue ticket, not match box office
	_, err := v.PurchaseTicket(ctx, a.ID(), "A", 1)
	require.NoError(t, err)

	home, err := venue.NewTeam("Sporting", "Lisboa", 1906, "Coach")
	require.NoError(t, err)
	require.NoError(t, home.AddPlayer("Player One"))
	away, err := venue.NewTeam("Benfica", "Lisboa", 1904, "Coach")
	require.NoError(t, err)
	require.NoError(t, away.AddPlayer("Player Two"))
	m, err := v.ScheduleMatch(home, away, time.Now(), "Referee")
	require.NoError(t, err)

	_, err = v.PurchaseTicket(ctx, a.ID(), "B", 2)
	require.NoError(t, err)
	_, err = v.PurchaseTicket(ctx, a.ID(), "C", 3)
	require.NoError(t, err)

	s, err := v.AddStand("Rolote", venue.ProductSpec{Name: "Bifana", Price: 4.5, Stock: 10})
	require.NoError(t, err)
	require.NoError(t, v.OpenStand(s.ID()))
	cart := venue.NewCart()
	require.NoError(t, cart.Add(1, 2))
	_, err = v.Checkout(ctx, a.ID(), s.ID(), cart)
	require.NoError(t, err)

	require.NoError(t, m.Start())
	_, err = m.RecordGoal(venue.Home, 10, "Player One")
	require.NoError(t, err)
	require.NoError(t, m.Finish())

	r := Build(v)
	assert.Equal(t, "Sporting vs Benfica", r.Fixture)
	assert.Equal(t, "Sporting 1 - 0 Benfica", r.Result)
	assert.Equal(t, venue.MatchFinished, r.MatchState)
	assert.Equal(t, 3, r.SeatsSold)
	assert.Equal(t, 50.0, r.BoxOffice)
	assert.Equal(t, []StandRevenue{{ID: 1, Name: "Rolote", Revenue: 9}}, r.Stands)
	assert.Equal(t, 59.0, r.TotalRevenue)
}

func TestRender(t *testing.T) {
	v, a := newVenue(t)
	_, err := v.PurchaseTicket(context.Background(), a.ID(), "A", 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	Render(&buf, Build(v))
	out := buf.String()

	assert.Contains(t, out, "FINAL MATCH REPORT")
	assert.Contains(t, out, "Result: not yet decided")
	assert.Contains(t, out, "* Sector A: 1/25")
	assert.Contains(t, out, "- Seats sold: 1/100")
	assert.Contains(t, out, "- Box office revenue: 10.00€")
	assert.Contains(t, out, "No stand operated during the event.")
	assert.Contains(t, out, "Total revenue (tickets + stands): 10.00€")
}
