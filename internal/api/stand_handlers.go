package api

import (
	"net/http"

	"ms-venue/internal/venue"
)

type addStandRequest struct {
	Name     string              `json:"name"`
	Products []venue.ProductSpec `json:"products"`
	Open     bool                `json:"open"`
}

func (h *Handler) AddStand(w http.ResponseWriter, r *http.Request) {
	var req addStandRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	s, err := h.Venue.AddStand(req.Name, req.Products...)
	if err != nil {
		h.sendError(w, err)
		return
	}
	if req.Open {
		if err := h.Venue.OpenStand(s.ID()); err != nil {
			h.sendError(w, err)
			return
		}
	}
	h.sendStand(w, http.StatusCreated, s.ID())
}

func (h *Handler) ListStands(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, http.StatusOK, h.Venue.StandSummaries())
}

func (h *Handler) GetStand(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "standID")
	if err != nil {
		badRequest(w, "invalid stand id")
		return
	}
	h.sendStand(w, http.StatusOK, id)
}

func (h *Handler) OpenStand(w http.ResponseWriter, r *http.Request) {
	h.setStandOpen(w, r, true)
}

func (h *Handler) CloseStand(w http.ResponseWriter, r *http.Request) {
	h.setStandOpen(w, r, false)
}

func (h *Handler) setStandOpen(w http.ResponseWriter, r *http.Request, open bool) {
	id, err := intParam(r, "standID")
	if err != nil {
		badRequest(w, "invalid stand id")
		return
	}
	if open {
		err = h.Venue.OpenStand(id)
	} else {
		err = h.Venue.CloseStand(id)
	}
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendStand(w, http.StatusOK, id)
}

func (h *Handler) sendStand(w http.ResponseWriter, status, id int) {
	sum, err := h.Venue.StandSummary(id)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, status, sum)
}

type cartLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type checkoutRequest struct {
	AccountID string     `json:"account_id"`
	Items     []cartLine `json:"items"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "standID")
	if err != nil {
		badRequest(w, "invalid stand id")
		return
	}
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	cart := venue.NewCart()
	for _, item := range req.Items {
		if err := cart.Add(item.ProductID, item.Quantity); err != nil {
			h.sendError(w, err)
			return
		}
	}
	receipt, err := h.Venue.Checkout(r.Context(), req.AccountID, id, cart)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONResponse(w, http.StatusCreated, receipt)
}
