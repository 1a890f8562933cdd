package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ms-venue/internal/simulator"
	"ms-venue/internal/venue"
)

type matchResponse struct {
	Home        *venue.Team      `json:"home"`
	Away        *venue.Team      `json:"away"`
	HomeRoster  []string         `json:"home_roster"`
	AwayRoster  []string         `json:"away_roster"`
	ScheduledAt time.Time        `json:"scheduled_at"`
	Referee     string           `json:"referee"`
	State       venue.MatchState `json:"state"`
	Scoreline   string           `json:"scoreline"`
	Result      string           `json:"result"`
	Scorers     []venue.Goal     `json:"scorers"`
	BoxOffice   float64          `json:"box_office"`
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	m, err := h.Venue.Match()
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, http.StatusOK, matchResponse{
		Home:        m.Home(),
		Away:        m.Away(),
		HomeRoster:  m.Home().Roster(),
		AwayRoster:  m.Away().Roster(),
		ScheduledAt: m.ScheduledAt(),
		Referee:     m.Referee(),
		State:       m.State(),
		Scoreline:   m.Scoreline(),
		Result:      m.Result(),
		Scorers:     m.Scorers(),
		BoxOffice:   m.BoxOffice(),
	})
}

// StartMatch kicks off the simulation in the background and returns at once.
func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	m, err := h.Venue.Match()
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.mu.Lock()
	if h.running == m || m.State() != venue.MatchScheduled {
		h.mu.Unlock()
		h.sendError(w, fmt.Errorf("match is %s: %w", m.State(), venue.ErrMatchState))
		return
	}
	h.running = m
	h.mu.Unlock()

	sim := h.NewSimulator(m)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		err := sim.Run(h.BaseContext)
		switch {
		case err == nil:
			h.Logger.Info("MATCH", "Simulation finished: "+m.Result())
		case errors.Is(err, simulator.ErrInterrupted):
			h.Logger.Warn("MATCH", err.Error())
		default:
			h.Logger.Error("MATCH", fmt.Sprintf("Simulation failed: %v", err))
		}
		// A run that never kicked off (lock held elsewhere) may be retried.
		if m.State() == venue.MatchScheduled {
			h.mu.Lock()
			h.running = nil
			h.mu.Unlock()
		}
	}()

	sendJSONResponse(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, http.StatusOK, h.Venue.IntervalSnapshot())
}

// StreamMatchEvents streams simulator events as SSE until the client leaves.
func (h *Handler) StreamMatchEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	setupSSEHeaders(w)

	ctx := r.Context()
	events := h.Events.Subscribe(ctx)

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	if last, ok := h.Events.Last(); ok {
		writeEvent(w, last)
	}
	flusher.Flush()
	h.Logger.Info("SSE", "Client connected to match events")

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize match event: %v", err))
				continue
			}
			flusher.Flush()
		case <-ctx.Done():
			h.Logger.Debug("SSE", "Client disconnected from match events")
			return
		case <-h.BaseContext.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, ev simulator.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Kind, data)
	return err
}

func setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
