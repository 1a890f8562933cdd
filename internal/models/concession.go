package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ConcessionSale is one line of a checkout. A checkout with three products writes three rows
// sharing SaleID.
type ConcessionSale struct {
	bun.BaseModel `bun:"table:concession_sales"`

	SaleID    string    `bun:"sale_id,pk" json:"sale_id"`
	Line      int       `bun:"line,pk" json:"line"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	AccountID string    `bun:"account_id,notnull" json:"account_id"`
	StandID   int       `bun:"stand_id" json:"stand_id"`
	Stand     string    `bun:"stand" json:"stand"`
	ProductID int       `bun:"product_id" json:"product_id"`
	Product   string    `bun:"product" json:"product"`
	Quantity  int       `bun:"quantity" json:"quantity"`
	UnitPrice float64   `bun:"unit_price" json:"unit_price"`
	Subtotal  float64   `bun:"subtotal" json:"subtotal"`
	SoldAt    time.Time `bun:"sold_at" json:"sold_at"`
}
