package venue_test

import (
	"testing"

	"ms-venue/internal/venue"

	"github.com/stretchr/testify/assert"
)

func TestSeatGrid_OutOfRangeCountsAsOccupied(t *testing.T) {
	g := venue.NewSeatGrid(5, 5)

	assert.True(t, g.IsOccupied(-1, 0))
	assert.True(t, g.IsOccupied(0, 5))
	assert.True(t, g.IsOccupied(5, 0))
	assert.False(t, g.IsOccupied(4, 4))
}

func TestSeatGrid_OccupyIgnoresOutOfRange(t *testing.T) {
	g := venue.NewSeatGrid(5, 5)

	g.Occupy(7, 7)
	g.Occupy(-1, 2)

	assert.Equal(t, 25, g.AvailableCount())
	assert.Equal(t, 0, g.OccupiedCount())
}

func TestSeatGrid_OccupancyIsMonotonic(t *testing.T) {
	g := venue.NewSeatGrid(5, 5)

	for seat := 1; seat <= g.Capacity(); seat++ {
		row, col := venue.SeatCoordinates(seat, g.Cols())
		g.Occupy(row, col)

		// Every seat occupied so far stays occupied
		for prev := 1; prev <= seat; prev++ {
			r, c := venue.SeatCoordinates(prev, g.Cols())
			assert.True(t, g.IsOccupied(r, c))
		}
		assert.Equal(t, g.Capacity(), g.AvailableCount()+g.OccupiedCount())
		assert.Equal(t, seat, g.OccupiedCount())
	}
	assert.Equal(t, 0, g.AvailableCount())
}

func TestSeatGrid_ReoccupyIsSilent(t *testing.T) {
	g := venue.NewSeatGrid(5, 5)

	g.Occupy(2, 2)
	g.Occupy(2, 2)

	assert.True(t, g.IsOccupied(2, 2))
	assert.Equal(t, 1, g.OccupiedCount())
}

func TestSeatGrid_SnapshotIsACopy(t *testing.T) {
	g := venue.NewSeatGrid(2, 3)
	g.Occupy(1, 2)

	snap := g.Snapshot()
	snap[0][0] = true

	assert.False(t, g.IsOccupied(0, 0))
	assert.Equal(t, [][]bool{{true, false, false}, {false, false, true}}, snap)
}

func TestSeatCoordinates(t *testing.T) {
	cases := []struct {
		seat     int
		row, col int
	}{
		{1, 0, 0},
		{5, 0, 4},
		{6, 1, 0},
		{13, 2, 2},
		{25, 4, 4},
	}
	for _, tc := range cases {
		row, col := venue.SeatCoordinates(tc.seat, 5)
		assert.Equal(t, tc.row, row, "row of seat %d", tc.seat)
		assert.Equal(t, tc.col, col, "col of seat %d", tc.seat)
		assert.Equal(t, tc.seat, venue.SeatNumber(row, col, 5))
	}
}

func TestTicketID(t *testing.T) {
	assert.Equal(t, "A1", venue.TicketID("A", 1))
	assert.Equal(t, "A7", venue.TicketID("A", 7))
	assert.Equal(t, "D25", venue.TicketID("D", 25))
}

func TestSector_Validation(t *testing.T) {
	_, err := venue.NewSector("", 10, 5, 5)
	assert.ErrorIs(t, err, venue.ErrValidation)

	_, err = venue.NewSector("A", 0, 5, 5)
	assert.ErrorIs(t, err, venue.ErrValidation)

	s, err := venue.NewSector("A", 10, 5, 5)
	assert.NoError(t, err)
	assert.Equal(t, 25, s.Capacity())
	assert.Equal(t, "13 (Row 3, Position 3)", s.SeatDescription(13))
	assert.True(t, s.SeatTaken(0))
	assert.True(t, s.SeatTaken(26))
	assert.False(t, s.SeatTaken(25))
}
