package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

type checkoutRequest struct {
	Plan models.PlanID `json:"plan"`
}

type completeRequest struct {
	PaymentID string        `json:"payment_id"`
	Plan      models.PlanID `json:"plan"`
}

func (s *Server) plans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plans": s.Billing.Plans()})
}

func (s *Server) subscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.Billing.Subscription(r.Context(), UserID(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	intent, err := s.Billing.Checkout(r.Context(), UserID(r.Context()), req.Plan)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := s.Billing.Complete(r.Context(), UserID(r.Context()), req.PaymentID, req.Plan)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
