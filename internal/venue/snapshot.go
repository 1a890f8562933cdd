package venue

// IntervalSnapshot is the venue state reported at half-time.
type IntervalSnapshot struct {
	Occupied     int     `json:"occupied"`
	Capacity     int     `json:"capacity"`
	OccupancyPct float64 `json:"occupancy_pct"`
	OpenStands   int     `json:"open_stands"`
	StandRevenue float64 `json:"stand_revenue"`
}

type SectorSummary struct {
	Code      string  `json:"code"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	Available int     `json:"available"`
	Occupied  int     `json:"occupied"`
}

type ProductSummary struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type StandSummary struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Open     bool             `json:"open"`
	Revenue  float64          `json:"revenue"`
	Products []ProductSummary `json:"products"`
}

type AccountSummary struct {
	Profile
	Balance float64  `json:"balance"`
	Tickets []Ticket `json:"tickets"`
}

// IntervalSnapshot aggregates occupancy across all sectors and stand activity.
// Safe to call while a match is being simulated.
func (v *Venue) IntervalSnapshot() IntervalSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	var snap IntervalSnapshot
	for _, s := range v.sectors {
		snap.Capacity += s.Capacity()
		snap.Occupied += s.Occupied()
	}
	if snap.Capacity > 0 {
		snap.OccupancyPct = float64(snap.Occupied) / float64(snap.Capacity) * 100
	}
	for _, s := range v.stands {
		if s.IsOpen() {
			snap.OpenStands++
		}
		snap.StandRevenue += s.Revenue()
	}
	return snap
}

// Capacity is the total seat count across sectors.
func (v *Venue) Capacity() int {
	total := 0
	for _, s := range v.sectors {
		total += s.Capacity()
	}
	return total
}

func (v *Venue) SectorSummaries() []SectorSummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]SectorSummary, 0, len(v.sectors))
	for _, s := range v.sectors {
		out = append(out, SectorSummary{
			Code:      s.Code(),
			Price:     s.Price(),
			Capacity:  s.Capacity(),
			Available: s.Available(),
			Occupied:  s.Occupied(),
		})
	}
	return out
}

// SeatMap returns a copy of a sector's occupancy grid.
func (v *Venue) SeatMap(code string) ([][]bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, err := v.Sector(code)
	if err != nil {
		return nil, err
	}
	return s.SeatMap(), nil
}

func (v *Venue) StandSummaries() []StandSummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]StandSummary, 0, len(v.stands))
	for _, s := range v.stands {
		out = append(out, summarizeStand(s))
	}
	return out
}

func (v *Venue) StandSummary(id int) (StandSummary, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, err := v.standLocked(id)
	if err != nil {
		return StandSummary{}, err
	}
	return summarizeStand(s), nil
}

func summarizeStand(s *Stand) StandSummary {
	sum := StandSummary{ID: s.ID(), Name: s.Name(), Open: s.IsOpen(), Revenue: s.Revenue()}
	for _, p := range s.products {
		sum.Products = append(sum.Products, ProductSummary{ID: p.ID(), Name: p.Name(), Price: p.Price(), Stock: p.Stock()})
	}
	return sum
}

func (v *Venue) AccountSummary(id string) (AccountSummary, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	a, err := v.accountLocked(id)
	if err != nil {
		return AccountSummary{}, err
	}
	return AccountSummary{Profile: a.Profile(), Balance: a.Balance(), Tickets: a.Tickets()}, nil
}

func (v *Venue) AccountCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.accounts)
}

// BoxOffice is the total paid for every ticket sold by the venue.
func (v *Venue) BoxOffice() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := 0.0
	for _, t := range v.sold {
		total += t.Price
	}
	return total
}
