package storage

import (
	"context"
	"fmt"
	"time"

	"ms-venue/internal/models"
	"ms-venue/internal/simulator"
	"ms-venue/internal/tickets/qr"
	"ms-venue/internal/venue"
)

// QREncoder renders the gate code stored with each ticket.
type QREncoder interface {
	GenerateEncryptedQR(p qr.Payload) ([]byte, error)
}

// Recorder persists committed transactions. It is registered as a venue sink, so its
// errors are logged by the venue and never reach the buyer.
type Recorder struct {
	db  *DB
	qr  QREncoder
	log Logger
	now func() time.Time
}

func NewRecorder(db *DB, enc QREncoder, log Logger) *Recorder {
	return &Recorder{db: db, qr: enc, log: log, now: time.Now}
}

func (r *Recorder) AccountRegistered(ctx context.Context, venueID int64, p venue.Profile) error {
	err := r.db.CreateAccount(ctx, models.Account{
		VenueID:        venueID,
		AccountID:      p.ID,
		Name:           p.Name,
		Age:            p.Age,
		Document:       p.Document,
		Address:        p.Address,
		InitialBalance: p.InitialBalance,
		CreatedAt:      r.now(),
	})
	if err != nil {
		return fmt.Errorf("save account %s: %w", p.ID, err)
	}
	r.log.Info("DATABASE", fmt.Sprintf("[INSERT] accounts - %s", p.ID))
	return nil
}

func (r *Recorder) TicketSold(ctx context.Context, venueID int64, accountID string, t venue.Ticket) error {
	rec := models.Ticket{
		VenueID:         venueID,
		TicketID:        t.ID,
		AccountID:       accountID,
		SectorCode:      t.SectorCode,
		Seat:            t.Seat,
		SeatLabel:       t.SeatDescription,
		PriceAtPurchase: t.Price,
		IssuedAt:        t.PurchasedAt,
	}
	if r.qr != nil {
		code, err := r.qr.GenerateEncryptedQR(qr.NewPayload(venueID, accountID, t))
		if err != nil {
			// The ticket is still worth recording without its code.
			r.log.Error("TICKET", fmt.Sprintf("Failed to generate QR for %s: %v", t.ID, err))
		}
		rec.QRCode = code
	}
	if err := r.db.CreateTicket(ctx, rec); err != nil {
		return fmt.Errorf("save ticket %s: %w", t.ID, err)
	}
	r.log.Info("DATABASE", fmt.Sprintf("[INSERT] tickets - %s", t.ID))
	return nil
}

func (r *Recorder) ConcessionSold(ctx context.Context, venueID int64, rc venue.Receipt) error {
	lines := make([]models.ConcessionSale, 0, len(rc.Lines))
	for i, l := range rc.Lines {
		lines = append(lines, models.ConcessionSale{
			SaleID:    rc.SaleID,
			Line:      i + 1,
			VenueID:   venueID,
			AccountID: rc.AccountID,
			StandID:   rc.StandID,
			Stand:     rc.Stand,
			ProductID: l.ProductID,
			Product:   l.Product,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
			SoldAt:    rc.SoldAt,
		})
	}
	if err := r.db.CreateSales(ctx, lines); err != nil {
		return fmt.Errorf("save sale %s: %w", rc.SaleID, err)
	}
	r.log.Info("DATABASE", fmt.Sprintf("[INSERT] concession_sales - %s (%d lines)", rc.SaleID, len(lines)))
	return nil
}

// MatchSink records the match events of one venue.
func (r *Recorder) MatchSink(venueID int64) simulator.Sink {
	return matchSink{r: r, venueID: venueID}
}

type matchSink struct {
	r       *Recorder
	venueID int64
}

func (m matchSink) HandleMatchEvent(ctx context.Context, ev simulator.Event) error {
	rec := models.MatchEvent{
		EventID:   ev.ID,
		VenueID:   m.venueID,
		Kind:      string(ev.Kind),
		Minute:    ev.Minute,
		Side:      string(ev.Side),
		Team:      ev.Team,
		Player:    ev.Player,
		HomeGoals: ev.HomeGoals,
		AwayGoals: ev.AwayGoals,
		At:        ev.At,
	}
	if ev.Snapshot != nil {
		rec.Occupancy = ev.Snapshot.OccupancyPct
	}
	if err := m.r.db.CreateMatchEvent(ctx, rec); err != nil {
		return fmt.Errorf("save match event %s at %d': %w", ev.Kind, ev.Minute, err)
	}
	return nil
}
