package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ms-venue/internal/logger"
	"ms-venue/internal/simulator"
	"ms-venue/internal/sse"
	"ms-venue/internal/tickets/qr"
	"ms-venue/internal/venue"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SimulatorFactory builds the simulator for a scheduled match.
type SimulatorFactory func(m *venue.Match) *simulator.Simulator

type Handler struct {
	Venue        *venue.Venue
	Logger       *logger.Logger
	Events       *sse.MatchEventEmitter
	QRGenerator  *qr.QRGenerator
	NewSimulator SimulatorFactory

	// BaseContext bounds background simulations; cancel it on shutdown.
	BaseContext context.Context

	mu      sync.Mutex
	running *venue.Match
	wg      sync.WaitGroup
}

func NewHandler(v *venue.Venue, log *logger.Logger, events *sse.MatchEventEmitter, gen *qr.QRGenerator, factory SimulatorFactory) *Handler {
	return &Handler{
		Venue:        v,
		Logger:       log,
		Events:       events,
		QRGenerator:  gen,
		NewSimulator: factory,
		BaseContext:  context.Background(),
	}
}

// Router returns the full HTTP surface with logging and panic recovery.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Route("/api", h.RegisterRoutes)
	return r
}

// RegisterRoutes registers the venue routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/venue", h.GetVenue)
	r.Get("/sectors", h.ListSectors)
	r.Get("/sectors/{code}/seats", h.GetSeatMap)

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.RegisterAccount)
		r.Get("/{accountID}", h.GetAccount)
		r.Post("/{accountID}/tickets", h.PurchaseTicket)
		r.Get("/{accountID}/tickets/{ticketID}/qr", h.TicketQR)
	})
	r.Post("/tickets/verify", h.VerifyTicket)

	r.Route("/stands", func(r chi.Router) {
		r.Get("/", h.ListStands)
		r.Post("/", h.AddStand)
		r.Get("/{standID}", h.GetStand)
		r.Post("/{standID}/open", h.OpenStand)
		r.Post("/{standID}/close", h.CloseStand)
		r.Post("/{standID}/checkout", h.Checkout)
	})

	r.Route("/match", func(r chi.Router) {
		r.Get("/", h.GetMatch)
		r.Post("/start", h.StartMatch)
		r.Get("/snapshot", h.GetSnapshot)
		r.Get("/events", h.StreamMatchEvents)
	})
	r.Get("/report", h.GetReport)
}

// Wait blocks until every background simulation has returned.
func (h *Handler) Wait() { h.wg.Wait() }

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// sendJSONResponse is a helper function to send JSON responses
func sendJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are gone by now; nothing useful to do with an encode error.
	_ = json.NewEncoder(w).Encode(data)
}

type errorResponse struct {
	Error     string           `json:"error"`
	Shortages []venue.Shortage `json:"shortages,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, venue.ErrValidation), errors.Is(err, venue.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, venue.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, venue.ErrNotFound), errors.Is(err, venue.ErrNoMatch):
		return http.StatusNotFound
	case errors.Is(err, venue.ErrSeatTaken), errors.Is(err, venue.ErrStandClosed),
		errors.Is(err, venue.ErrCapacityExceeded), errors.Is(err, venue.ErrMatchState),
		errors.Is(err, simulator.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, venue.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) sendError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	var stock *venue.StockError
	if errors.As(err, &stock) {
		resp.Shortages = stock.Shortages
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("API", err.Error())
	}
	sendJSONResponse(w, status, resp)
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	sendJSONResponse(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
