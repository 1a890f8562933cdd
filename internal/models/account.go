package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Account struct {
	bun.BaseModel `bun:"table:accounts"`

	VenueID        int64     `bun:"venue_id,pk" json:"venue_id"`
	AccountID      string    `bun:"account_id,pk" json:"account_id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Age            int       `bun:"age" json:"age"`
	Document       string    `bun:"document" json:"document"`
	Address        string    `bun:"address" json:"address"`
	InitialBalance float64   `bun:"initial_balance" json:"initial_balance"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"created_at"`
}
