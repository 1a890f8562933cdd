package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	VenueID         int64     `bun:"venue_id,pk" json:"venue_id"`
	TicketID        string    `bun:"ticket_id,pk" json:"ticket_id"`
	AccountID       string    `bun:"account_id,notnull" json:"account_id"`
	SectorCode      string    `bun:"sector_code,notnull" json:"sector_code"`
	Seat            int       `bun:"seat" json:"seat"`
	SeatLabel       string    `bun:"seat_label" json:"seat_label"`
	PriceAtPurchase float64   `bun:"price_at_purchase" json:"price_at_purchase"`
	QRCode          []byte    `bun:"qr_code" json:"-"`
	IssuedAt        time.Time `bun:"issued_at" json:"issued_at"`
}
