package venue

import (
	"fmt"
	"strings"
)

// ProductSpec describes a product to be stocked at a stand.
type ProductSpec struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Stand is a concession point. It starts closed; Sell is the only path that
// touches stock or revenue.
type Stand struct {
	id       int
	name     string
	open     bool
	products []*Product
	revenue  float64
}

func NewStand(id int, name string) (*Stand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("stand name must not be blank")
	}
	return &Stand{id: id, name: name}, nil
}

func (s *Stand) ID() int          { return s.id }
func (s *Stand) Name() string     { return s.name }
func (s *Stand) IsOpen() bool     { return s.open }
func (s *Stand) Revenue() float64 { return s.revenue }
func (s *Stand) Open()            { s.open = true }
func (s *Stand) Close()           { s.open = false }

// AddProduct stocks a new product with the next sequential product id.
func (s *Stand) AddProduct(spec ProductSpec) (*Product, error) {
	p, err := newProduct(len(s.products)+1, spec.Name, spec.Price, spec.Stock)
	if err != nil {
		return nil, err
	}
	s.products = append(s.products, p)
	return p, nil
}

// Products returns the stand's products in insertion order.
func (s *Stand) Products() []*Product {
	return append([]*Product(nil), s.products...)
}

func (s *Stand) Product(id int) (*Product, error) {
	for _, p := range s.products {
		if p.id == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %d at stand %d: %w", id, s.id, ErrNotFound)
}

func (s *Stand) owns(p *Product) bool {
	for _, own := range s.products {
		if own == p {
			return true
		}
	}
	return false
}

// Sell moves quantity units of p out of stock and books price*quantity as revenue.
func (s *Stand) Sell(p *Product, quantity int) error {
	if !s.open {
		return fmt.Errorf("stand %q: %w", s.name, ErrStandClosed)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if p == nil || !s.owns(p) {
		return fmt.Errorf("product at stand %q: %w", s.name, ErrNotFound)
	}
	if p.stock < quantity {
		return &StockError{Shortages: []Shortage{{
			ProductID: p.id,
			Product:   p.name,
			Requested: quantity,
			Available: p.stock,
		}}}
	}
	p.stock -= quantity
	s.revenue += p.price * float64(quantity)
	return nil
}
