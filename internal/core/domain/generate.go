package domain

import "net/url"

// AdParams are the recognised ad-generation parameters. All of them are
// optional and forwarded to the ad server verbatim as query parameters;
// the server owns their semantics. Breakpoints, Preroll and Postroll are
// only meaningful for VMAP generation.
type AdParams struct {
	Consent     bool   // c
	Duration    string // dur
	SkipOffset  string // skip
	UserID      string // uid
	OS          string // os
	DeviceType  string // dt
	ScreenSize  string // ss
	ClientIP    string // uip
	UserAgent   string // userAgent
	Collection  string // coll
	PodMin      string // min
	PodMax      string // max
	PodSize     string // ps
	Version     string // v
	Breakpoints string // bp
	Preroll     bool   // prr
	Postroll    bool   // por
}

// Values encodes the parameters under the ad server's short query names,
// omitting anything unset. VMAP-only parameters are included only when
// vmap is true.
func (p AdParams) Values(vmap bool) url.Values {
	q := url.Values{}
	if p.Consent {
		q.Set("c", "true")
	}
	set := func(name, v string) {
		if v != "" {
			q.Set(name, v)
		}
	}
	set("dur", p.Duration)
	set("skip", p.SkipOffset)
	set("uid", p.UserID)
	set("os", p.OS)
	set("dt", p.DeviceType)
	set("ss", p.ScreenSize)
	set("uip", p.ClientIP)
	set("userAgent", p.UserAgent)
	set("coll", p.Collection)
	set("min", p.PodMin)
	set("max", p.PodMax)
	set("ps", p.PodSize)
	set("v", p.Version)
	if vmap {
		set("bp", p.Breakpoints)
		if p.Preroll {
			q.Set("prr", "true")
		}
		if p.Postroll {
			q.Set("por", "true")
		}
	}
	return q
}

// GeneratedAd is the result of an ad-generation call. SessionID comes
// from the x-session-id response header and is empty when the server did
// not send one; callers must treat empty as "unknown session". Kind is
// filled in by the console layer after content detection.
type GeneratedAd struct {
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind,omitempty"`
	XML       string `json:"xml"`
}
