package api

import (
	"net/http"

	"ms-venue/internal/report"
	"ms-venue/internal/venue"

	"github.com/go-chi/chi/v5"
)

type venueResponse struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Location       string                 `json:"location"`
	Capacity       int                    `json:"capacity"`
	MinimumBalance float64                `json:"minimum_balance"`
	Occupancy      venue.IntervalSnapshot `json:"occupancy"`
	Accounts       int                    `json:"accounts"`
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, http.StatusOK, venueResponse{
		ID:             h.Venue.ID(),
		Name:           h.Venue.Name(),
		Location:       h.Venue.Location(),
		Capacity:       h.Venue.Capacity(),
		MinimumBalance: h.Venue.MinimumBalance(),
		Occupancy:      h.Venue.IntervalSnapshot(),
		Accounts:       h.Venue.AccountCount(),
	})
}

func (h *Handler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, http.StatusOK, h.Venue.SectorSummaries())
}

func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	seats, err := h.Venue.SeatMap(code)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, http.StatusOK, map[string]any{"sector": code, "seats": seats})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, http.StatusOK, report.Build(h.Venue))
}
