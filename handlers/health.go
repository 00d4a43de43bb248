package handlers

import "net/http"

// GET /api/healthz — liveness probe, not behind the auth gate.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
