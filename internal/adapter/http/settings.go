package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

type settingsResponse struct {
	BaseURL string `json:"baseUrl"`
}

type settingsRequest struct {
	BaseURL string `json:"baseUrl"`
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, settingsResponse{BaseURL: h.settings.Get(r.Context())})
}

// handlePutSettings validates and stores a new base URL. Validation
// happens before any persistence or network activity; an invalid URL is
// rejected inline with a 400.
func (h *Handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}
	if !h.settings.IsValid(req.BaseURL) {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "base url must be an absolute http or https URL"})
		return
	}
	clean, err := h.settings.Set(r.Context(), req.BaseURL)
	if err != nil {
		h.logger.Error("settings save failed", slog.Any("error", err))
		writeJSON(w, h.logger, http.StatusInternalServerError, errorResponse{Message: "failed to persist settings"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, settingsResponse{BaseURL: clean})
}

// handleTestSettings probes a candidate URL without storing it. When the
// body carries no URL the currently configured one is probed instead.
func (h *Handler) handleTestSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}
	target := req.BaseURL
	if target == "" {
		target = h.settings.Get(r.Context())
	}
	ok := h.settings.TestConnection(r.Context(), target)
	writeJSON(w, h.logger, http.StatusOK, map[string]bool{"reachable": ok})
}

func (h *Handler) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	clean, err := h.settings.ResetToDefault(r.Context())
	if err != nil {
		h.logger.Error("settings reset failed", slog.Any("error", err))
		writeJSON(w, h.logger, http.StatusInternalServerError, errorResponse{Message: "failed to persist settings"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, settingsResponse{BaseURL: clean})
}
