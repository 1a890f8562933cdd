package sse

import (
	"context"
	"sync"

	"ms-venue/internal/simulator"
)

const clientBuffer = 32

// MatchEventEmitter fans simulator events out to SSE subscribers. A slow client
// misses events rather than holding up the match clock.
type MatchEventEmitter struct {
	mu      sync.RWMutex
	clients map[chan simulator.Event]struct{}
	last    *simulator.Event
}

func NewMatchEventEmitter() *MatchEventEmitter {
	return &MatchEventEmitter{clients: make(map[chan simulator.Event]struct{})}
}

// Subscribe returns a channel that is closed once ctx is done.
func (e *MatchEventEmitter) Subscribe(ctx context.Context) <-chan simulator.Event {
	ch := make(chan simulator.Event, clientBuffer)

	e.mu.Lock()
	e.clients[ch] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.remove(ch)
	}()
	return ch
}

// HandleMatchEvent never fails; it satisfies simulator.Sink.
func (e *MatchEventEmitter) HandleMatchEvent(_ context.Context, ev simulator.Event) error {
	e.mu.Lock()
	e.last = &ev
	e.mu.Unlock()

	// Held for reading so remove cannot close a channel mid-send.
	e.mu.RLock()
	defer e.mu.RUnlock()
	for ch := range e.clients {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Last is the most recent event, for clients joining mid-match.
func (e *MatchEventEmitter) Last() (simulator.Event, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.last == nil {
		return simulator.Event{}, false
	}
	return *e.last, true
}

func (e *MatchEventEmitter) ClientCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.clients)
}

func (e *MatchEventEmitter) remove(ch chan simulator.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.clients[ch]; ok {
		delete(e.clients, ch)
		close(ch)
	}
}
