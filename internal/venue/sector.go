package venue

import (
	"fmt"
	"strconv"
	"strings"
)

// Sector is a priced seating block. Code and price never change after creation.
type Sector struct {
	code  string
	price float64
	grid  *SeatGrid
}

func NewSector(code string, price float64, rows, cols int) (*Sector, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError("sector code must not be blank")
	}
	if price <= 0 {
		return nil, validationError("sector %s price must be positive, got %.2f", code, price)
	}
	if rows <= 0 || cols <= 0 {
		return nil, validationError("sector %s grid must be at least 1x1, got %dx%d", code, rows, cols)
	}
	return &Sector{code: code, price: price, grid: NewSeatGrid(rows, cols)}, nil
}

func (s *Sector) Code() string      { return s.code }
func (s *Sector) Price() float64    { return s.price }
func (s *Sector) Capacity() int     { return s.grid.Capacity() }
func (s *Sector) Available() int    { return s.grid.AvailableCount() }
func (s *Sector) Occupied() int     { return s.grid.OccupiedCount() }
func (s *Sector) SeatMap() [][]bool { return s.grid.Snapshot() }

// Coordinates converts a seat number of this sector to grid coordinates.
func (s *Sector) Coordinates(seat int) (row, col int) {
	return SeatCoordinates(seat, s.grid.Cols())
}

// SeatTaken reports whether a seat number is occupied or does not exist.
func (s *Sector) SeatTaken(seat int) bool {
	row, col := s.Coordinates(seat)
	return s.grid.IsOccupied(row, col)
}

func (s *Sector) occupy(seat int) {
	row, col := s.Coordinates(seat)
	s.grid.Occupy(row, col)
}

// TicketID is the stable ticket key: sector code followed by seat number.
func TicketID(sectorCode string, seat int) string {
	return sectorCode + strconv.Itoa(seat)
}

// SeatDescription renders a seat number with its 1-based row and position.
func (s *Sector) SeatDescription(seat int) string {
	row, col := s.Coordinates(seat)
	return fmt.Sprintf("%d (Row %d, Position %d)", seat, row+1, col+1)
}
