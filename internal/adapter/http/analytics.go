package httpadapter

import (
	"net/http"
	"time"
)

// handleOverview aggregates analytics over a freshly fetched session
// list. Nothing is cached; every call recomputes from scratch.
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.console.Overview(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, overview)
}

type upstreamStatus struct {
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checkedAt"`
}

type sessionsStatus struct {
	TotalItems  int       `json:"totalItems"`
	RefreshedAt time.Time `json:"refreshedAt"`
	Error       string    `json:"error,omitempty"`
}

type statusResponse struct {
	Upstream upstreamStatus `json:"upstream"`
	Sessions sessionsStatus `json:"sessions"`
}

// handleStatus serves the poller snapshots: last known upstream health
// and the last session-list refresh. Zero timestamps mean the poller has
// not completed a fetch yet.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	healthy, checkedAt, _ := h.upstream.Snapshot()
	page, refreshedAt, err := h.sessions.Snapshot()

	resp := statusResponse{
		Upstream: upstreamStatus{Healthy: healthy, CheckedAt: checkedAt},
		Sessions: sessionsStatus{RefreshedAt: refreshedAt},
	}
	if page != nil {
		resp.Sessions.TotalItems = page.TotalItems
	}
	if err != nil {
		resp.Sessions.Error = "refresh failed"
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}
