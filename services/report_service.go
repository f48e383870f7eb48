// File: services/report_service.go
package services

import (
	"context"
	"time"

	"sports-scheduler/store"
)

// Report aggregates session activity for the admin reports view.
type Report struct {
	TotalSessions int            `json:"totalSessions"`
	Popularity    map[string]int `json:"popularity"`
}

// ReportService computes the admin activity report. Pure read.
type ReportService struct {
	stores *store.Stores
}

// NewReportService creates a ReportService.
func NewReportService(stores *store.Stores) *ReportService {
	return &ReportService{stores: stores}
}

// farFuture stands in for an open upper bound.
var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// Summary counts non-cancelled sessions whose start time falls inside
// [from, to], plus a per-sport popularity map. Empty bounds span all
// time. Bounds accept "2006-01-02" or RFC 3339.
func (s *ReportService) Summary(ctx context.Context, from, to string) (*Report, error) {
	fromTime, err := parseBound(from, time.Time{})
	if err != nil {
		return nil, ErrMissingFields
	}
	toTime, err := parseBound(to, farFuture)
	if err != nil {
		return nil, ErrMissingFields
	}

	sessions, err := s.stores.Sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	sports, err := s.stores.Sports.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(sports))
	for _, sp := range sports {
		names[sp.ID.Hex()] = sp.Name
	}

	report := &Report{Popularity: make(map[string]int)}
	for i := range sessions {
		sess := &sessions[i]
		if sess.Cancelled {
			continue
		}
		start := sess.StartTime()
		if start.Before(fromTime) || start.After(toTime) {
			continue
		}
		name, ok := names[sess.SportID.Hex()]
		if !ok {
			name = "Unknown"
		}
		report.TotalSessions++
		report.Popularity[name]++
	}
	return report, nil
}

func parseBound(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
