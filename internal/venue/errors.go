package venue

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors. Every one of them is recoverable: the failing operation leaves the
// venue exactly as it found it.
var (
	ErrValidation        = errors.New("invalid argument")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrSeatTaken         = errors.New("seat already taken")
	ErrStandClosed       = errors.New("stand is closed")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrNotFound          = errors.New("not found")

	// Match errors
	ErrNoMatch    = errors.New("no match scheduled")
	ErrMatchState = errors.New("invalid match state")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Shortage is one cart line that cannot be served from stock.
type Shortage struct {
	ProductID int    `json:"product_id"`
	Product   string `json:"product"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// StockError reports every cart line that failed the stock pre-check.
type StockError struct {
	Shortages []Shortage
}

func (e *StockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.Product, s.Requested, s.Available))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, ", "))
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}
