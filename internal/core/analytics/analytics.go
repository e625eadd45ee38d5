// Package analytics derives summary statistics from a session list. All
// values are recomputed from scratch on every invocation; nothing here
// keeps incremental state.
package analytics

import (
	"time"

	"ad-console/internal/core/domain"
)

// DayBucket is one calendar day of the trailing window with its session
// count.
type DayBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Overview is the aggregated view over a session list. ActiveSessions is
// an approximation: no last-activity timestamp exists, so activity means
// "created within the last six hours". AverageSessionAgeMs is 0 when the
// list is empty.
type Overview struct {
	TotalSessions       int         `json:"totalSessions"`
	ActiveSessions      int         `json:"activeSessions"`
	RecentSessions      int         `json:"recentSessions"`
	AverageSessionAgeMs int64       `json:"averageSessionAgeMs"`
	SessionsByDay       []DayBucket `json:"sessionsByDay"`
}

// Compute aggregates the sessions relative to now. Recent and active
// window boundaries are exclusive: a session created exactly 24 hours
// before now does not count as recent. SessionsByDay always holds exactly
// seven buckets for the trailing seven civil calendar days in now's
// location, today inclusive, oldest first; sessions outside the window
// are dropped from the buckets but still count toward TotalSessions.
func Compute(now time.Time, sessions []domain.Session) *Overview {
	ov := &Overview{
		TotalSessions: len(sessions),
		SessionsByDay: make([]DayBucket, 0, 7),
	}

	oneDayAgo := now.Add(-24 * time.Hour)
	sixHoursAgo := now.Add(-6 * time.Hour)

	var totalAge time.Duration
	for _, s := range sessions {
		if s.Created.After(oneDayAgo) {
			ov.RecentSessions++
		}
		if s.Created.After(sixHoursAgo) {
			ov.ActiveSessions++
		}
		totalAge += now.Sub(s.Created)
	}
	if len(sessions) > 0 {
		ov.AverageSessionAgeMs = totalAge.Milliseconds() / int64(len(sessions))
	}

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1)

		count := 0
		for _, s := range sessions {
			created := s.Created.In(now.Location())
			if !created.Before(start) && created.Before(end) {
				count++
			}
		}
		ov.SessionsByDay = append(ov.SessionsByDay, DayBucket{
			Date:  start.Format("Jan 02"),
			Count: count,
		})
	}

	return ov
}
