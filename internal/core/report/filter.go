// Package report is the aggregation engine behind the admin overview and the
// self-service utilization chart. Every function is pure: it takes snapshots
// of records and users plus a filter and returns freshly built derived values,
// so recomputing on an unchanged snapshot always yields identical output.
package report

import "github.com/teamops/opstracker/internal/core/domain"

// Filter narrows the record set an aggregation runs over. A zero field means
// "no constraint"; a record passes only when every set field matches.
//
// Date bounds are inclusive and compared lexicographically, which is correct
// only because completedDate is fixed-width YYYY-MM-DD.
type Filter struct {
	DateStart string
	DateEnd   string
	Team      string
	UserID    string
}

// Matches reports whether a single record passes the filter.
func (f Filter) Matches(r domain.ProductionRecord) bool {
	if f.DateStart != "" && r.CompletedDate < f.DateStart {
		return false
	}
	if f.DateEnd != "" && r.CompletedDate > f.DateEnd {
		return false
	}
	if f.Team != "" && r.Team != f.Team {
		return false
	}
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving input order.
func (f Filter) Apply(records []domain.ProductionRecord) []domain.ProductionRecord {
	if f == (Filter{}) {
		out := make([]domain.ProductionRecord, len(records))
		copy(out, records)
		return out
	}
	out := make([]domain.ProductionRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
