package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"ms-venue/internal/config"
	"ms-venue/internal/simulator"
	"ms-venue/internal/venue"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

type logSpy struct {
	infos, errors []string
}

func (l *logSpy) Info(_, msg string)  { l.infos = append(l.infos, msg) }
func (l *logSpy) Error(_, msg string) { l.errors = append(l.errors, msg) }

var topics = config.TopicConfig{
	TicketSold:     "venue.ticket.sold",
	ConcessionSold: "venue.concession.sold",
	MatchEvents:    "venue.match.events",
}

var at = time.Date(2025, 9, 11, 19, 30, 0, 0, time.UTC)

func decode(t *testing.T, msg kafka.Message) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	return env
}

func TestTicketSold(t *testing.T) {
	w := new(MockWriter)
	var sent []kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).([]kafka.Message)
	}).Return(nil)
	p := newProducerWithWriter(w, topics, &logSpy{})

	ticket := venue.Ticket{ID: "C12", SectorCode: "C", Seat: 12, Price: 30, PurchasedAt: at}
	require.NoError(t, p.TicketSold(context.Background(), 42, "AD002", ticket))

	require.Len(t, sent, 1)
	assert.Equal(t, "venue.ticket.sold", sent[0].Topic)
	assert.Equal(t, "C12", string(sent[0].Key))

	env := decode(t, sent[0])
	assert.Equal(t, "ticket_sold", env.Type)
	assert.Equal(t, int64(42), env.VenueID)
	assert.True(t, at.Equal(env.OccurredAt))

	var payload TicketSold
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "AD002", payload.AccountID)
	assert.Equal(t, 12, payload.Ticket.Seat)
}

func TestConcessionSold(t *testing.T) {
	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && msgs[0].Topic == "venue.concession.sold" && string(msgs[0].Key) == "sale-1"
	})).Return(nil).Once()
	p := newProducerWithWriter(w, topics, &logSpy{})

	err := p.ConcessionSold(context.Background(), 42, venue.Receipt{SaleID: "sale-1", Total: 7.5, SoldAt: at})
	require.NoError(t, err)
	w.AssertExpectations(t)
}

func TestMatchSink_KeyedByVenue(t *testing.T) {
	w := new(MockWriter)
	var sent []kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = append(sent, args.Get(1).([]kafka.Message)...)
	}).Return(nil)
	p := newProducerWithWriter(w, topics, &logSpy{})
	sink := p.MatchSink(42)

	require.NoError(t, sink.HandleMatchEvent(context.Background(), simulator.Event{ID: "e1", Kind: simulator.EventKickoff, Minute: 1, At: at}))
	require.NoError(t, sink.HandleMatchEvent(context.Background(), simulator.Event{ID: "e2", Kind: simulator.EventGoal, Minute: 10, Side: venue.Home, At: at}))

	require.Len(t, sent, 2)
	for _, m := range sent {
		assert.Equal(t, "venue.match.events", m.Topic)
		assert.Equal(t, "42", string(m.Key))
	}
	assert.Equal(t, "goal", decode(t, sent[1]).Type)
}

func TestPublishError(t *testing.T) {
	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available"))
	p := newProducerWithWriter(w, topics, &logSpy{})

	err := p.TicketSold(context.Background(), 42, "AD001", venue.Ticket{ID: "A1"})
	assert.ErrorContains(t, err, "venue.ticket.sold")
	assert.ErrorContains(t, err, "leader not available")
}

func TestMockMode_LogsOnly(t *testing.T) {
	spy := &logSpy{}
	p := NewProducer(config.KafkaConfig{MockMode: true, Topics: topics}, spy)

	require.NoError(t, p.TicketSold(context.Background(), 42, "AD001", venue.Ticket{ID: "A1"}))
	require.NoError(t, p.AccountRegistered(context.Background(), 42, venue.Profile{ID: "AD001"}))
	require.Len(t, spy.infos, 1)
	assert.Contains(t, spy.infos[0], "[MOCK] venue.ticket.sold")
	assert.NoError(t, p.Close())
}

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{"venue.ticket.sold", "venue.concession.sold", "venue.match.events"}, Topics(topics))
}

type fakeReader struct {
	msgs []kafka.Message
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) Close() error { return nil }

func TestConsumer_SkipsUndecodable(t *testing.T) {
	good, err := json.Marshal(Envelope{Type: "goal", VenueID: 42})
	require.NoError(t, err)
	spy := &logSpy{}
	c := &Consumer{reader: &fakeReader{msgs: []kafka.Message{{Value: []byte("{")}, {Value: good}}}, log: spy}

	var got []Envelope
	err = c.Start(context.Background(), func(e Envelope) { got = append(got, e) })

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, got, 1)
	assert.Equal(t, "goal", got[0].Type)
	assert.Len(t, spy.errors, 2)
}
