package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// handleListSessions proxies the upstream session listing, forwarding
// page and limit query parameters verbatim and returning the pagination
// envelope unchanged.
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.console.Sessions(r.Context(), q.Get("page"), q.Get("limit"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, page)
}

// handleSessionDetail returns one session together with its detected
// response kind and the ad list parsed from the raw document.
func (h *Handler) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.console.SessionDetail(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, detail)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.console.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionEvents returns the session's tracking events, both flat
// and grouped by the ad they reference.
func (h *Handler) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.console.SessionEvents(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, events)
}

// handleTracking relays a tracking event payload into the session.
// The payload is forwarded verbatim; the ad server owns its semantics.
func (h *Handler) handleTracking(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}
	if err := h.console.Track(r.Context(), chi.URLParam(r, "sessionID"), payload); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
