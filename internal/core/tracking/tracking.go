// Package tracking shapes flat tracking-event lists for display.
package tracking

import (
	"sort"
	"time"

	"ad-console/internal/core/domain"
)

// GroupByAd builds a mapping from ad identifier to the events that
// reference it, each group sorted ascending by issue time with stable
// ties. Events missing onAd, type or issuedAt are silently excluded.
// The onAd value is never validated against any ad id space: a dangling
// reference simply becomes its own group. Empty input yields an empty
// map.
func GroupByAd(events []domain.TrackingEvent) map[string][]domain.TrackingEvent {
	groups := make(map[string][]domain.TrackingEvent)
	for _, ev := range events {
		if ev.OnAd == "" || ev.Type == "" || ev.IssuedAt == "" {
			continue
		}
		groups[ev.OnAd] = append(groups[ev.OnAd], ev)
	}
	for id, evs := range groups {
		sort.SliceStable(evs, func(i, j int) bool {
			return issuedAt(evs[i]).Before(issuedAt(evs[j]))
		})
		groups[id] = evs
	}
	return groups
}

// issuedAt parses the event timestamp for ordering. Unparseable values
// sort as the zero time, keeping their relative input order.
func issuedAt(ev domain.TrackingEvent) time.Time {
	t, err := time.Parse(time.RFC3339, ev.IssuedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
