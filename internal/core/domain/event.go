package domain

// TrackingEvent is a timestamped playback or interaction signal reported
// for one ad within a session. IssuedAt stays a string on purpose: the
// server controls the format and malformed values are tolerated, the
// grouping layer parses it only for ordering. OnAd references an ad id
// from the session's VAST response and may be dangling.
type TrackingEvent struct {
	Type      string `json:"type"`
	IssuedAt  string `json:"issuedAt"`
	OnAd      string `json:"onAd"`
	UserAgent string `json:"userAgent,omitempty"`
}

// EventList is the events payload returned per session.
type EventList struct {
	Events []TrackingEvent `json:"events"`
	Total  int             `json:"total"`
}
