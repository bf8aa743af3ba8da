package httpapi

import (
	"net/http"
)

func (s *Server) live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	checks, ok := s.Health.Ready(r.Context())
	status, label := http.StatusOK, "ready"
	if !ok {
		status, label = http.StatusServiceUnavailable, "not ready"
	}
	writeJSON(w, status, map[string]any{"status": label, "checks": checks})
}
