package venue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cart collects product quantities for one stand before checkout. Adding the same
// product twice sums the quantities.
type Cart struct {
	quantities map[int]int
	order      []int
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[int]int)}
}

func (c *Cart) Add(productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if _, ok := c.quantities[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.quantities[productID] += quantity
	return nil
}

func (c *Cart) Quantity(productID int) int {
	return c.quantities[productID]
}

func (c *Cart) Len() int {
	return len(c.order)
}

// SaleLine is one committed cart line.
type SaleLine struct {
	ProductID int     `json:"product_id"`
	Product   string  `json:"product"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Receipt describes a committed concession checkout.
type Receipt struct {
	SaleID    string     `json:"sale_id"`
	AccountID string     `json:"account_id"`
	StandID   int        `json:"stand_id"`
	Stand     string     `json:"stand"`
	Lines     []SaleLine `json:"lines"`
	Total     float64    `json:"total"`
	Balance   float64    `json:"balance"`
	SoldAt    time.Time  `json:"sold_at"`
}

// Checkout charges the account for the whole cart and books every line at the
// stand. If any line lacks stock, or the account cannot pay, nothing changes.
func (v *Venue) Checkout(ctx context.Context, accountID string, standID int, cart *Cart) (Receipt, error) {
	if cart == nil || cart.Len() == 0 {
		return Receipt{}, validationError("cart is empty")
	}

	v.mu.Lock()
	account, err := v.accountLocked(accountID)
	if err != nil {
		v.mu.Unlock()
		return Receipt{}, err
	}
	stand, err := v.standLocked(standID)
	if err != nil {
		v.mu.Unlock()
		return Receipt{}, err
	}
	if !stand.IsOpen() {
		v.mu.Unlock()
		return Receipt{}, fmt.Errorf("stand %q: %w", stand.Name(), ErrStandClosed)
	}

	products := make([]*Product, 0, cart.Len())
	var shortages []Shortage
	for _, id := range cart.order {
		p, err := stand.Product(id)
		if err != nil {
			v.mu.Unlock()
			return Receipt{}, err
		}
		if qty := cart.quantities[id]; p.Stock() < qty {
			shortages = append(shortages, Shortage{ProductID: id, Product: p.Name(), Requested: qty, Available: p.Stock()})
		}
		products = append(products, p)
	}
	if len(shortages) > 0 {
		v.mu.Unlock()
		return Receipt{}, &StockError{Shortages: shortages}
	}

	receipt := Receipt{
		SaleID:    uuid.NewString(),
		AccountID: account.ID(),
		StandID:   stand.ID(),
		Stand:     stand.Name(),
		SoldAt:    v.now(),
	}
	for _, p := range products {
		qty := cart.quantities[p.ID()]
		line := SaleLine{
			ProductID: p.ID(),
			Product:   p.Name(),
			UnitPrice: p.Price(),
			Quantity:  qty,
			Subtotal:  p.Price() * float64(qty),
		}
		receipt.Lines = append(receipt.Lines, line)
		receipt.Total += line.Subtotal
	}

	if err := account.PurchaseGoods(receipt.Total); err != nil {
		v.mu.Unlock()
		return Receipt{}, err
	}
	for _, p := range products {
		// Cannot fail after the pre-check while the lock is held; still authoritative.
		if err := stand.Sell(p, cart.quantities[p.ID()]); err != nil {
			v.mu.Unlock()
			v.log.Error("CONCESSION", fmt.Sprintf("[ABORT] sale %s charged %s but %s failed: %v", receipt.SaleID, account.ID(), p.Name(), err))
			return Receipt{}, fmt.Errorf("sale %s line %s: %w", receipt.SaleID, p.Name(), err)
		}
	}
	receipt.Balance = account.Balance()
	v.mu.Unlock()

	v.log.Info("CONCESSION", fmt.Sprintf("[SOLD] %s - %s paid %.2f at %q", receipt.SaleID, account.ID(), receipt.Total, stand.Name()))
	v.notify(ctx, "sale "+receipt.SaleID, func(s Sink) error {
		return s.ConcessionSold(ctx, v.id, receipt)
	})
	return receipt, nil
}
