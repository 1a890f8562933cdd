// Package report assembles and prints the end-of-event summary.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ms-venue/internal/venue"

	"github.com/fatih/color"
)

type StandRevenue struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type Report struct {
	VenueID      int64                 `json:"venue_id"`
	Venue        string                `json:"venue"`
	Fixture      string                `json:"fixture,omitempty"`
	MatchState   venue.MatchState      `json:"match_state,omitempty"`
	Result       string                `json:"result"`
	Scorers      []venue.Goal          `json:"scorers,omitempty"`
	Sectors      []venue.SectorSummary `json:"sectors"`
	SeatsSold    int                   `json:"seats_sold"`
	Capacity     int                   `json:"capacity"`
	BoxOffice    float64               `json:"box_office"`
	Stands       []StandRevenue        `json:"stands"`
	StandRevenue float64               `json:"stand_revenue"`
	TotalRevenue float64               `json:"total_revenue"`
}

// Build reads the venue. Without a match the result stays pending and box office
// counts every ticket the venue sold.
func Build(v *venue.Venue) Report {
	r := Report{
		VenueID:  v.ID(),
		Venue:    v.Name(),
		Result:   venue.ResultPending,
		Sectors:  v.SectorSummaries(),
		Capacity: v.Capacity(),
	}
	for _, s := range r.Sectors {
		r.SeatsSold += s.Occupied
	}

	m, err := v.Match()
	switch {
	case err == nil:
		r.Fixture = fmt.Sprintf("%s vs %s", m.Home().Name, m.Away().Name)
		r.MatchState = m.State()
		r.Result = m.Result()
		r.Scorers = m.Scorers()
		r.BoxOffice = m.BoxOffice()
	case errors.Is(err, venue.ErrNoMatch):
		r.BoxOffice = v.BoxOffice()
	}

	for _, s := range v.StandSummaries() {
		r.Stands = append(r.Stands, StandRevenue{ID: s.ID, Name: s.Name, Revenue: s.Revenue})
		r.StandRevenue += s.Revenue
	}
	r.TotalRevenue = r.BoxOffice + r.StandRevenue
	return r
}

var (
	banner  = color.New(color.FgGreen, color.Bold)
	heading = color.New(color.FgCyan, color.Bold)
)

func Render(w io.Writer, r Report) {
	rule := strings.Repeat("=", 39)
	banner.Fprintln(w, rule)
	banner.Fprintln(w, "========== FINAL MATCH REPORT =========")
	banner.Fprintln(w, rule)
	fmt.Fprintf(w, "Venue: %s (%d)\n", r.Venue, r.VenueID)
	if r.Fixture != "" {
		fmt.Fprintf(w, "Fixture: %s\n", r.Fixture)
	}
	fmt.Fprintf(w, "Result: %s\n", r.Result)
	for _, g := range r.Scorers {
		fmt.Fprintf(w, "  %d' %s (%s)\n", g.Minute, g.Player, g.Team)
	}

	heading.Fprintln(w, "\n--- 1. Box office ---")
	fmt.Fprintln(w, "- Occupancy by sector:")
	for _, s := range r.Sectors {
		fmt.Fprintf(w, "  * Sector %s: %d/%d\n", s.Code, s.Occupied, s.Capacity)
	}
	fmt.Fprintf(w, "- Seats sold: %d/%d\n", r.SeatsSold, r.Capacity)
	fmt.Fprintf(w, "- Box office revenue: %.2f€\n", r.BoxOffice)

	heading.Fprintln(w, "\n--- 2. Stands ---")
	if len(r.Stands) == 0 {
		fmt.Fprintln(w, "No stand operated during the event.")
	}
	for _, s := range r.Stands {
		fmt.Fprintf(w, "- Stand '%s' revenue: %.2f€\n", s.Name, s.Revenue)
	}
	fmt.Fprintf(w, "- Total stand revenue: %.2f€\n", r.StandRevenue)

	heading.Fprintln(w, "\n--- 3. Event total ---")
	fmt.Fprintf(w, "Total revenue (tickets + stands): %.2f€\n", r.TotalRevenue)
	fmt.Fprintln(w, strings.Repeat("=", 47))
}
