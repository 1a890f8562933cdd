package venue

import (
	"context"
	"fmt"
)

// PurchaseTicket sells seat in sectorCode to the account at the sector's current
// price. Either the balance, the seat grid and both ticket ledgers all change, or
// none of them do.
func (v *Venue) PurchaseTicket(ctx context.Context, accountID, sectorCode string, seat int) (Ticket, error) {
	v.mu.Lock()
	account, err := v.accountLocked(accountID)
	if err != nil {
		v.mu.Unlock()
		return Ticket{}, err
	}
	sector, err := v.Sector(sectorCode)
	if err != nil {
		v.mu.Unlock()
		return Ticket{}, err
	}
	if sector.SeatTaken(seat) {
		v.mu.Unlock()
		return Ticket{}, fmt.Errorf("seat %s: %w", TicketID(sector.Code(), seat), ErrSeatTaken)
	}

	ticket := newTicket(sector, seat, v.now())
	if err := account.PurchaseTicket(ticket); err != nil {
		v.mu.Unlock()
		return Ticket{}, err
	}
	sector.occupy(seat)
	v.sold = append(v.sold, ticket)
	if v.match != nil {
		v.match.addTicket(ticket)
	}
	balance := account.Balance()
	v.mu.Unlock()

	v.log.Info("TICKET", fmt.Sprintf("[SOLD] %s - %s paid %.2f, balance %.2f", ticket.ID, account.ID(), ticket.Price, balance))
	v.notify(ctx, "ticket "+ticket.ID, func(s Sink) error {
		return s.TicketSold(ctx, v.id, account.ID(), ticket)
	})
	return ticket, nil
}
