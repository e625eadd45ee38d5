package domain

import "time"

// Session is one ad-request/response transaction recorded by the ad server.
// The record is created by the server when an ad is generated and is
// read-only here; the response field holds the raw VAST or VMAP document.
type Session struct {
	SessionID       string        `json:"sessionId"`
	UserID          string        `json:"userId,omitempty"`
	Created         time.Time     `json:"created"`
	AdBreakDuration string        `json:"adBreakDuration"`
	ClientRequest   ClientRequest `json:"clientRequest"`
	Response        string        `json:"response"`
}

// ClientRequest maps the original ad-request parameter names (dur, uip,
// userAgent, acceptLang, host, ...) to their string values.
type ClientRequest map[string]string

// SessionPage is the pagination envelope returned by the ad server's
// session listing. Previous and next page numbers are nil at the
// boundaries.
type SessionPage struct {
	PreviousPage *int      `json:"previousPage"`
	CurrentPage  int       `json:"currentPage"`
	NextPage     *int      `json:"nextPage"`
	TotalPages   int       `json:"totalPages"`
	Limit        int       `json:"limit"`
	TotalItems   int       `json:"totalItems"`
	Data         []Session `json:"data"`
}
