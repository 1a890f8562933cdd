package venue

import "time"

// Ticket is proof of purchase for one seat. It refers to its sector by code only and
// is never modified after issue.
type Ticket struct {
	ID              string    `json:"id"`
	SectorCode      string    `json:"sector"`
	Seat            int       `json:"seat"`
	SeatDescription string    `json:"seat_description"`
	Price           float64   `json:"price"`
	PurchasedAt     time.Time `json:"purchased_at"`
}

func newTicket(sector *Sector, seat int, at time.Time) Ticket {
	return Ticket{
		ID:              TicketID(sector.Code(), seat),
		SectorCode:      sector.Code(),
		Seat:            seat,
		SeatDescription: sector.SeatDescription(seat),
		Price:           sector.Price(),
		PurchasedAt:     at,
	}
}
