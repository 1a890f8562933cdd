package api

import (
	"net/http"

	"ms-venue/internal/tickets/qr"
	"ms-venue/internal/venue"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var in venue.AccountInput
	if err := decode(r, &in); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	a, err := h.Venue.RegisterAccount(r.Context(), in)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, http.StatusCreated, venue.AccountSummary{Profile: a.Profile(), Balance: a.Balance(), Tickets: a.Tickets()})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Venue.AccountSummary(chi.URLParam(r, "accountID"))
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, http.StatusOK, sum)
}

type purchaseRequest struct {
	Sector string `json:"sector"`
	Seat   int    `json:"seat"`
}

type purchaseResponse struct {
	Ticket  venue.Ticket `json:"ticket"`
	Balance float64      `json:"balance"`
}

func (h *Handler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	if req.Sector == "" {
		badRequest(w, "sector is required")
		return
	}
	accountID := chi.URLParam(r, "accountID")
	t, err := h.Venue.PurchaseTicket(r.Context(), accountID, req.Sector, req.Seat)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sum, err := h.Venue.AccountSummary(accountID)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, http.StatusCreated, purchaseResponse{Ticket: t, Balance: sum.Balance})
}

// TicketQR serves the gate code for one of the account's tickets as a PNG.
func (h *Handler) TicketQR(w http.ResponseWriter, r *http.Request) {
	accountID, ticketID := chi.URLParam(r, "accountID"), chi.URLParam(r, "ticketID")
	sum, err := h.Venue.AccountSummary(accountID)
	if err != nil {
		h.sendError(w, err)
		return
	}
	for _, t := range sum.Tickets {
		if t.ID != ticketID {
			continue
		}
		png, err := h.QRGenerator.GenerateEncryptedQR(qr.NewPayload(h.Venue.ID(), accountID, t))
		if err != nil {
			h.sendError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
		return
	}
	sendJSONResponse(w, http.StatusNotFound, errorResponse{Error: "ticket " + ticketID + " not held by " + accountID})
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid   bool       `json:"valid"`
	Reason  string     `json:"reason,omitempty"`
	Payload qr.Payload `json:"payload"`
}

// VerifyTicket checks a scanned token against this venue's ledger.
func (h *Handler) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decode(r, &req); err != nil || req.Token == "" {
		badRequest(w, "token is required")
		return
	}
	p, err := h.QRGenerator.Open(req.Token)
	if err != nil {
		sendJSONResponse(w, http.StatusOK, verifyResponse{Valid: false, Reason: "unreadable token"})
		return
	}
	if p.VenueID != h.Venue.ID() {
		sendJSONResponse(w, http.StatusOK, verifyResponse{Valid: false, Reason: "issued by another venue", Payload: p})
		return
	}
	sum, err := h.Venue.AccountSummary(p.AccountID)
	if err == nil {
		for _, t := range sum.Tickets {
			if t.ID == p.TicketID {
				sendJSONResponse(w, http.StatusOK, verifyResponse{Valid: true, Payload: p})
				return
			}
		}
	}
	sendJSONResponse(w, http.StatusOK, verifyResponse{Valid: false, Reason: "ticket not on record", Payload: p})
}
