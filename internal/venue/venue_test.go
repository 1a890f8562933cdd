package venue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ms-venue/internal/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSink is a mock implementation of the venue.Sink interface
type MockSink struct {
	mock.Mock
}

func (m *MockSink) AccountRegistered(ctx context.Context, venueID int64, p venue.Profile) error {
	args := m.Called(ctx, venueID, p)
	return args.Error(0)
}

func (m *MockSink) TicketSold(ctx context.Context, venueID int64, accountID string, t venue.Ticket) error {
	args := m.Called(ctx, venueID, accountID, t)
	return args.Error(0)
}

func (m *MockSink) ConcessionSold(ctx context.Context, venueID int64, r venue.Receipt) error {
	args := m.Called(ctx, venueID, r)
	return args.Error(0)
}

type fixedID int64

func (f fixedID) Int64N(int64) int64 { return int64(f) }

var purchaseTime = time.Date(2025, 9, 11, 19, 30, 0, 0, time.UTC)

func newVenue(t *testing.T, opts ...venue.Option) *venue.Venue {
	t.Helper()
	opts = append([]venue.Option{
		venue.WithIDSource(fixedID(234_567_890)),
		venue.WithClock(func() time.Time { return purchaseTime }),
	}, opts...)
	v, err := venue.New(venue.Config{
		Name:           "Estadio Jose Alvalade",
		Location:       "Lisboa",
		MinimumBalance: 5,
	}, opts...)
	require.NoError(t, err)
	return v
}

func register(t *testing.T, v *venue.Venue, balance float64) *venue.Account {
	t.Helper()
	a, err := v.RegisterAccount(context.Background(), venue.AccountInput{
		Name:     "Maria Silva",
		Age:      30,
		Document: "12345678",
		Address:  "Rua Augusta 1, Lisboa",
		Balance:  balance,
	})
	require.NoError(t, err)
	return a
}

func TestNew_DefaultSectorsAndID(t *testing.T) {
	v := newVenue(t)

	assert.Equal(t, int64(1_234_567_890), v.ID())
	require.Len(t, v.Sectors(), 4)
	assert.Equal(t, 100, v.Capacity())
	for i, code := range []string{"A", "B", "C", "D"} {
		s := v.Sectors()[i]
		assert.Equal(t, code, s.Code())
		assert.Equal(t, float64(10*(i+1)), s.Price())
	}
}

func TestNew_RejectsDuplicateSectors(t *testing.T) {
	_, err := venue.New(venue.Config{
		Name:    "Dup",
		Sectors: []venue.SectorSpec{{Code: "A", Price: 10}, {Code: "a", Price: 12}},
	})
	assert.ErrorIs(t, err, venue.ErrValidation)
}

func TestRegisterAccount_SequentialIDs(t *testing.T) {
	v := newVenue(t)

	for i, want := range []string{"AD001", "AD002", "AD003"} {
		a := register(t, v, 20)
		assert.Equal(t, want, a.ID(), "account %d", i+1)
	}
	assert.Equal(t, 3, v.AccountCount())
	assert.Equal(t, "AD007", venue.AccountID(7))
}

func TestRegisterAccount_Validation(t *testing.T) {
	v := newVenue(t)
	valid := venue.AccountInput{Name: "Rui", Age: 18, Document: "87654321", Address: "Porto", Balance: 5}

	cases := map[string]func(in *venue.AccountInput){
		"blank name":      func(in *venue.AccountInput) { in.Name = "  " },
		"underage":        func(in *venue.AccountInput) { in.Age = 17 },
		"short document":  func(in *venue.AccountInput) { in.Document = "1234567" },
		"alpha document":  func(in *venue.AccountInput) { in.Document = "1234567a" },
		"blank address":   func(in *venue.AccountInput) { in.Address = "" },
		"balance too low": func(in *venue.AccountInput) { in.Balance = 4.99 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := v.RegisterAccount(context.Background(), in)
			assert.ErrorIs(t, err, venue.ErrValidation)
		})
	}

	// Failed registrations do not consume ids
	a, err := v.RegisterAccount(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, "AD001", a.ID())
}

func TestRegisterAccount_SinkFailureIsOnlyLogged(t *testing.T) {
	sink := new(MockSink)
	sink.On("AccountRegistered", mock.Anything, int64(1_234_567_890), mock.MatchedBy(func(p venue.Profile) bool {
		return p.ID == "AD001"
	})).Return(errors.New("disk full"))

	v := newVenue(t, venue.WithSink(sink))
	a := register(t, v, 20)

	assert.Equal(t, "AD001", a.ID())
	assert.Equal(t, 1, v.AccountCount())
	sink.AssertExpectations(t)
}

func TestAddStand_CapacityExceeded(t *testing.T) {
	v := newVenue(t)

	for i := 1; i <= venue.DefaultMaxStands; i++ {
		s, err := v.AddStand("Stand", venue.ProductSpec{Name: "Water", Price: 1, Stock: 1})
		require.NoError(t, err)
		assert.Equal(t, i, s.ID())
		assert.False(t, s.IsOpen())
	}

	_, err := v.AddStand("One Too Many")
	assert.ErrorIs(t, err, venue.ErrCapacityExceeded)
	assert.Len(t, v.StandSummaries(), venue.DefaultMaxStands)
}

func TestAddStand_InvalidProductAddsNothing(t *testing.T) {
	v := newVenue(t)

	_, err := v.AddStand("Broken", venue.ProductSpec{Name: "Water", Price: 1, Stock: 1}, venue.ProductSpec{Name: "Free", Price: 0})
	assert.ErrorIs(t, err, venue.ErrValidation)
	assert.Empty(t, v.StandSummaries())
}

func TestIntervalSnapshot(t *testing.T) {
	v := newVenue(t)
	a := register(t, v, 100)
	ctx := context.Background()

	_, err := v.PurchaseTicket(ctx, a.ID(), "A", 1)
	require.NoError(t, err)
	_, err = v.PurchaseTicket(ctx, a.ID(), "B", 5)
	require.NoError(t, err)

	s1, err := v.AddStand("Open", venue.ProductSpec{Name: "Beer", Price: 2.5, Stock: 10})
	require.NoError(t, err)
	_, err = v.AddStand("Closed")
	require.NoError(t, err)
	require.NoError(t, v.OpenStand(s1.ID()))

	cart := venue.NewCart()
	require.NoError(t, cart.Add(1, 2))
	_, err = v.Checkout(ctx, a.ID(), s1.ID(), cart)
	require.NoError(t, err)

	snap := v.IntervalSnapshot()
	assert.Equal(t, 2, snap.Occupied)
	assert.Equal(t, 100, snap.Capacity)
	assert.InDelta(t, 2.0, snap.OccupancyPct, 1e-9)
	assert.Equal(t, 1, snap.OpenStands)
	assert.InDelta(t, 5.0, snap.StandRevenue, 1e-9)
}

func TestScheduleMatch(t *testing.T) {
	v := newVenue(t)
	home, away := teams(t)

	_, err := v.Match()
	assert.ErrorIs(t, err, venue.ErrNoMatch)

	empty, err := venue.NewTeam("Empty", "Nowhere", 2000, "Nobody")
	require.NoError(t, err)
	_, err = v.ScheduleMatch(home, empty, purchaseTime, "Joao Pinheiro")
	assert.ErrorIs(t, err, venue.ErrValidation)
	_, err = v.ScheduleMatch(home, home, purchaseTime, "Joao Pinheiro")
	assert.ErrorIs(t, err, venue.ErrValidation)

	m, err := v.ScheduleMatch(home, away, purchaseTime, "Joao Pinheiro")
	require.NoError(t, err)
	assert.Equal(t, venue.MatchScheduled, m.State())

	require.NoError(t, m.Start())
	_, err = v.ScheduleMatch(home, away, purchaseTime, "Joao Pinheiro")
	assert.ErrorIs(t, err, venue.ErrMatchState)
}
