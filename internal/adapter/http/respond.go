package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"ad-console/internal/core/port"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; log and move on
		logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps domain errors onto the console's error surface:
// upstream HTTP statuses pass through with the server-provided message,
// transport failures become a generic 502 connection error, anything
// else is a 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var upstream *port.UpstreamError
	switch {
	case errors.As(err, &upstream):
		writeJSON(w, logger, upstream.StatusCode, errorResponse{Message: upstream.Message})
	case errors.Is(err, port.ErrNotFound):
		writeJSON(w, logger, http.StatusNotFound, errorResponse{Message: "not found"})
	case errors.Is(err, port.ErrForbidden):
		writeJSON(w, logger, http.StatusForbidden, errorResponse{Message: "forbidden"})
	default:
		logger.Error("ad server unreachable", slog.Any("error", err))
		writeJSON(w, logger, http.StatusBadGateway, errorResponse{Message: "ad server connection error"})
	}
}
