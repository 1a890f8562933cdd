package venue

// Reference grid dimensions for a sector.
const (
	DefaultRows = 5
	DefaultCols = 5
)

// SeatGrid is a fixed rows x cols occupancy grid. Seats go from free to occupied
// and are never released.
type SeatGrid struct {
	rows, cols int
	cells      [][]bool
}

func NewSeatGrid(rows, cols int) *SeatGrid {
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return &SeatGrid{rows: rows, cols: cols, cells: cells}
}

func (g *SeatGrid) Rows() int     { return g.rows }
func (g *SeatGrid) Cols() int     { return g.cols }
func (g *SeatGrid) Capacity() int { return g.rows * g.cols }

func (g *SeatGrid) inRange(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsOccupied reports whether the seat is taken. Coordinates outside the grid count
// as occupied so nothing can ever be booked there.
func (g *SeatGrid) IsOccupied(row, col int) bool {
	if !g.inRange(row, col) {
		return true
	}
	return g.cells[row][col]
}

// Occupy marks the seat as taken. Out of range coordinates are ignored. It does not
// check whether the seat was already occupied; callers check IsOccupied first.
func (g *SeatGrid) Occupy(row, col int) {
	if !g.inRange(row, col) {
		return
	}
	g.cells[row][col] = true
}

// AvailableCount counts free seats on every call.
func (g *SeatGrid) AvailableCount() int {
	free := 0
	for _, row := range g.cells {
		for _, taken := range row {
			if !taken {
				free++
			}
		}
	}
	return free
}

func (g *SeatGrid) OccupiedCount() int {
	return g.Capacity() - g.AvailableCount()
}

// Snapshot returns a copy of the grid for display.
func (g *SeatGrid) Snapshot() [][]bool {
	out := make([][]bool, g.rows)
	for i, row := range g.cells {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// SeatCoordinates maps a 1-based, row-major seat number onto grid coordinates.
func SeatCoordinates(seat, cols int) (row, col int) {
	return (seat - 1) / cols, (seat - 1) % cols
}

// SeatNumber is the inverse of SeatCoordinates.
func SeatNumber(row, col, cols int) int {
	return row*cols + col + 1
}
