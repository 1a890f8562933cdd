package venue

import "strings"

// Product is a sellable item owned by exactly one stand. Price is fixed at creation.
type Product struct {
	id    int
	name  string
	price float64
	stock int
}

func newProduct(id int, name string, price float64, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("product name must not be blank")
	}
	if price <= 0 {
		return nil, validationError("product %q price must be positive, got %.2f", name, price)
	}
	if stock < 0 {
		return nil, validationError("product %q stock must not be negative, got %d", name, stock)
	}
	return &Product{id: id, name: name, price: price, stock: stock}, nil
}

func (p *Product) ID() int        { return p.id }
func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }
func (p *Product) Stock() int     { return p.stock }
