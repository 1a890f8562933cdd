package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ms-venue/internal/config"
	"ms-venue/internal/simulator"
	"ms-venue/internal/venue"

	"github.com/segmentio/kafka-go"
)

type Logger interface {
	Info(category, message string)
	Error(category, message string)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope wraps every published payload.
type Envelope struct {
	Type       string          `json:"type"`
	VenueID    int64           `json:"venue_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type TicketSold struct {
	AccountID string       `json:"account_id"`
	Ticket    venue.Ticket `json:"ticket"`
}

// Producer publishes committed sales and match events. In mock mode it only logs.
type Producer struct {
	writer   messageWriter
	topics   config.TopicConfig
	mockMode bool
	log      Logger
}

func NewProducer(cfg config.KafkaConfig, log Logger) *Producer {
	p := &Producer{topics: cfg.Topics, mockMode: cfg.MockMode, log: log}
	if !cfg.MockMode {
		p.writer = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
	}
	return p
}

func newProducerWithWriter(w messageWriter, topics config.TopicConfig, log Logger) *Producer {
	return &Producer{writer: w, topics: topics, log: log}
}

func (p *Producer) publish(ctx context.Context, topic, key, kind string, venueID int64, at time.Time, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	msg, err := json.Marshal(Envelope{Type: kind, VenueID: venueID, OccurredAt: at, Payload: body})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", kind, err)
	}

	if p.mockMode {
		p.log.Info("KAFKA", fmt.Sprintf("[MOCK] %s - %s", topic, msg))
		return nil
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: msg,
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", kind, topic, err)
	}
	p.log.Info("KAFKA", fmt.Sprintf("[PUBLISH] %s - %s", topic, key))
	return nil
}

// AccountRegistered has no topic; registrations stay local.
func (p *Producer) AccountRegistered(context.Context, int64, venue.Profile) error { return nil }

func (p *Producer) TicketSold(ctx context.Context, venueID int64, accountID string, t venue.Ticket) error {
	return p.publish(ctx, p.topics.TicketSold, t.ID, "ticket_sold", venueID, t.PurchasedAt,
		TicketSold{AccountID: accountID, Ticket: t})
}

func (p *Producer) ConcessionSold(ctx context.Context, venueID int64, r venue.Receipt) error {
	return p.publish(ctx, p.topics.ConcessionSold, r.SaleID, "concession_sold", venueID, r.SoldAt, r)
}

// MatchSink publishes the match events of one venue, keyed by venue so they stay ordered.
func (p *Producer) MatchSink(venueID int64) simulator.Sink {
	return matchSink{p: p, venueID: venueID}
}

type matchSink struct {
	p       *Producer
	venueID int64
}

func (m matchSink) HandleMatchEvent(ctx context.Context, ev simulator.Event) error {
	return m.p.publish(ctx, m.p.topics.MatchEvents, fmt.Sprint(m.venueID), string(ev.Kind), m.venueID, ev.At, ev)
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
