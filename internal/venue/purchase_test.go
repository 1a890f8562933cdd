package venue_test

import (
	"context"
	"testing"

	"ms-venue/internal/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurchaseTicket_Success(t *testing.T) {
	sink := new(MockSink)
	v := newVenue(t, venue.WithSink(sink))
	sink.On("AccountRegistered", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sink.On("TicketSold", mock.Anything, v.ID(), "AD001", mock.MatchedBy(func(tk venue.Ticket) bool {
		return tk.ID == "A1"
	})).Return(nil).Once()

	a := register(t, v, 15)
	ticket, err := v.PurchaseTicket(context.Background(), a.ID(), "A", 1)
	require.NoError(t, err)

	assert.Equal(t, "A1", ticket.ID)
	assert.Equal(t, "A", ticket.SectorCode)
	assert.Equal(t, "1 (Row 1, Position 1)", ticket.SeatDescription)
	assert.Equal(t, 10.0, ticket.Price)
	assert.Equal(t, purchaseTime, ticket.PurchasedAt)

	assert.InDelta(t, 5.0, a.Balance(), 1e-9)
	require.Len(t, a.Tickets(), 1)
	sector, err := v.Sector("A")
	require.NoError(t, err)
	assert.True(t, sector.SeatMap()[0][0])
	assert.Len(t, v.SoldTickets(), 1)
	sink.AssertExpectations(t)
}

func TestPurchaseTicket_SeatTaken(t *testing.T) {
	v := newVenue(t)
	a := register(t, v, 15)
	ctx := context.Background()

	_, err := v.PurchaseTicket(ctx, a.ID(), "A", 1)
	require.NoError(t, err)

	_, err = v.PurchaseTicket(ctx, a.ID(), "A", 1)
	assert.ErrorIs(t, err, venue.ErrSeatTaken)
	assert.InDelta(t, 5.0, a.Balance(), 1e-9)
	assert.Len(t, a.Tickets(), 1)
	assert.Len(t, v.SoldTickets(), 1)
}

func TestPurchaseTicket_InsufficientFundsChangesNothing(t *testing.T) {
	sink := new(MockSink)
	sink.On("AccountRegistered", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	v := newVenue(t, venue.WithSink(sink))
	home, away := teams(t)
	m, err := v.ScheduleMatch(home, away, purchaseTime, "Joao Pinheiro")
	require.NoError(t, err)

	a := register(t, v, 5)
	_, err = v.PurchaseTicket(context.Background(), a.ID(), "A", 1)
	assert.ErrorIs(t, err, venue.ErrInsufficientFunds)

	sector, _ := v.Sector("A")
	assert.False(t, sector.SeatTaken(1))
	assert.Equal(t, 25, sector.Available())
	assert.InDelta(t, 5.0, a.Balance(), 1e-9)
	assert.Empty(t, a.Tickets())
	assert.Empty(t, v.SoldTickets())
	assert.Empty(t, m.Tickets())
	sink.AssertNotCalled(t, "TicketSold", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseTicket_OutOfRangeSeatIsTaken(t *testing.T) {
	v := newVenue(t)
	a := register(t, v, 100)

	for _, seat := range []int{0, -4, 26} {
		_, err := v.PurchaseTicket(context.Background(), a.ID(), "A", seat)
		assert.ErrorIs(t, err, venue.ErrSeatTaken, "seat %d", seat)
	}
	assert.InDelta(t, 100.0, a.Balance(), 1e-9)
}

func TestPurchaseTicket_UnknownAccountOrSector(t *testing.T) {
	v := newVenue(t)
	a := register(t, v, 100)

	_, err := v.PurchaseTicket(context.Background(), "AD999", "A", 1)
	assert.ErrorIs(t, err, venue.ErrNotFound)
	_, err = v.PurchaseTicket(context.Background(), a.ID(), "Z", 1)
	assert.ErrorIs(t, err, venue.ErrNotFound)
}

func TestPurchaseTicket_RecordsOnMatchAndVenue(t *testing.T) {
	v := newVenue(t)
	home, away := teams(t)
	m, err := v.ScheduleMatch(home, away, purchaseTime, "Joao Pinheiro")
	require.NoError(t, err)
	a := register(t, v, 100)
	ctx := context.Background()

	_, err = v.PurchaseTicket(ctx, a.ID(), "a", 7)
	require.NoError(t, err)
	_, err = v.PurchaseTicket(ctx, a.ID(), "D", 25)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, a.Balance(), 1e-9)
	assert.InDelta(t, 50.0, v.BoxOffice(), 1e-9)
	assert.InDelta(t, 50.0, m.BoxOffice(), 1e-9)
	ids := []string{}
	for _, tk := range a.Tickets() {
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []string{"A7", "D25"}, ids)
}

func TestPurchaseTicket_BalanceNeverNegative(t *testing.T) {
	v := newVenue(t)
	a := register(t, v, 65)
	ctx := context.Background()

	sold := 0.0
	for seat := 1; seat <= 25; seat++ {
		before := a.Balance()
		ticket, err := v.PurchaseTicket(ctx, a.ID(), "C", seat)
		if err != nil {
			assert.ErrorIs(t, err, venue.ErrInsufficientFunds)
			assert.Equal(t, before, a.Balance())
			continue
		}
		sold += ticket.Price
		assert.InDelta(t, before-ticket.Price, a.Balance(), 1e-9)
		assert.GreaterOrEqual(t, a.Balance(), 0.0)
	}
	assert.InDelta(t, 60.0, sold, 1e-9)
	assert.InDelta(t, 5.0, a.Balance(), 1e-9)
}
