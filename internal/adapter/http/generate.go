package httpadapter

import (
	"net/http"

	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
)

// handleGenerate requests a new ad document of the given kind. Named
// parameters are mapped onto the recognised set; the flexible kind
// forwards the whole query string untouched. No parameter is validated
// locally, the ad server owns their semantics.
func (h *Handler) handleGenerate(kind port.GenerateKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		params := domain.AdParams{
			Consent:     q.Get("c") == "true",
			Duration:    q.Get("dur"),
			SkipOffset:  q.Get("skip"),
			UserID:      q.Get("uid"),
			OS:          q.Get("os"),
			DeviceType:  q.Get("dt"),
			ScreenSize:  q.Get("ss"),
			ClientIP:    q.Get("uip"),
			UserAgent:   q.Get("userAgent"),
			Collection:  q.Get("coll"),
			PodMin:      q.Get("min"),
			PodMax:      q.Get("max"),
			PodSize:     q.Get("ps"),
			Version:     q.Get("v"),
			Breakpoints: q.Get("bp"),
			Preroll:     q.Get("prr") == "true",
			Postroll:    q.Get("por") == "true",
		}

		ad, err := h.console.Generate(r.Context(), kind, params, q)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ad)
	}
}
