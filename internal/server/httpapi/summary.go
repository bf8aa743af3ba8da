package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophdrive/internal/server/services"
)

func (s *Server) generateSummary(w http.ResponseWriter, r *http.Request) {
	var req services.SummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := s.Summaries.Generate(r.Context(), UserID(r.Context()), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
