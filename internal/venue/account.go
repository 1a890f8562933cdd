package venue

import (
	"fmt"
	"regexp"
	"strings"
)

// MinimumAge is the youngest a registered account holder may be.
const MinimumAge = 18

// DefaultMinimumBalance is the smallest opening balance accepted for an account.
const DefaultMinimumBalance = 10.0

var documentPattern = regexp.MustCompile(`^\d{8}$`)

// AccountInput is the registration payload for a new account.
type AccountInput struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Document string  `json:"document"`
	Address  string  `json:"address"`
	Balance  float64 `json:"balance"`
}

// Profile is the immutable registration data of an account.
type Profile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Document       string  `json:"document"`
	Address        string  `json:"address"`
	InitialBalance float64 `json:"initial_balance"`
}

// Account is a registered ticket holder with a wallet. Tickets are kept in
// purchase order and never removed.
type Account struct {
	profile Profile
	balance float64
	tickets []Ticket
}

// AccountID formats the sequential account identity, e.g. AD007.
func AccountID(seq int) string {
	return fmt.Sprintf("AD%03d", seq)
}

func (in AccountInput) validate(minBalance float64) error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("name must not be blank")
	}
	if in.Age < MinimumAge {
		return validationError("account holder must be at least %d, got %d", MinimumAge, in.Age)
	}
	if !documentPattern.MatchString(strings.TrimSpace(in.Document)) {
		return validationError("document must be exactly 8 digits")
	}
	if strings.TrimSpace(in.Address) == "" {
		return validationError("address must not be blank")
	}
	if in.Balance < minBalance {
		return validationError("opening balance must be at least %.2f, got %.2f", minBalance, in.Balance)
	}
	return nil
}

func newAccount(id string, in AccountInput, minBalance float64) (*Account, error) {
	if err := in.validate(minBalance); err != nil {
		return nil, err
	}
	return &Account{
		profile: Profile{
			ID:             id,
			Name:           strings.TrimSpace(in.Name),
			Age:            in.Age,
			Document:       strings.TrimSpace(in.Document),
			Address:        strings.TrimSpace(in.Address),
			InitialBalance: in.Balance,
		},
		balance: in.Balance,
	}, nil
}

func (a *Account) ID() string       { return a.profile.ID }
func (a *Account) Profile() Profile { return a.profile }
func (a *Account) Balance() float64 { return a.balance }

// Tickets returns the owned tickets in purchase order.
func (a *Account) Tickets() []Ticket {
	return append([]Ticket(nil), a.tickets...)
}

// PurchaseTicket debits the ticket price and takes ownership of the ticket.
func (a *Account) PurchaseTicket(t Ticket) error {
	if a.balance < t.Price {
		return fmt.Errorf("account %s: ticket %s costs %.2f, balance %.2f: %w",
			a.profile.ID, t.ID, t.Price, a.balance, ErrInsufficientFunds)
	}
	a.balance -= t.Price
	a.tickets = append(a.tickets, t)
	return nil
}

// PurchaseGoods debits amount for a concession purchase. It does not touch any stand.
func (a *Account) PurchaseGoods(amount float64) error {
	if amount < 0 {
		return validationError("amount must not be negative, got %.2f", amount)
	}
	if a.balance < amount {
		return fmt.Errorf("account %s: purchase of %.2f, balance %.2f: %w",
			a.profile.ID, amount, a.balance, ErrInsufficientFunds)
	}
	a.balance -= amount
	return nil
}
