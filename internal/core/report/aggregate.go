package report

import (
	"sort"
	"strings"

	"github.com/teamops/opstracker/internal/core/domain"
)

// workdayHours caps the per-day average so sparse data cannot show an
// operator at more than a full working day.
const workdayHours = 8.0

// UserUtilization is one row of the per-user overview, already in hours.
type UserUtilization struct {
	UserID                string  `json:"userId"`
	Name                  string  `json:"name"`
	Team                  string  `json:"team"`
	Days                  int     `json:"days"`
	TotalHours            float64 `json:"totalHours"`
	AverageHours          float64 `json:"averageHours"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
}

// UtilizationByUser computes the average daily utilization per non-admin user
// over the filtered records.
//
// Minutes are summed per record without multiplying by count — the overview
// has always measured nominal task time, not volume. The average is capped at
// a full 8-hour day, users with no matching records or a non-positive average
// are omitted, and the result is sorted by average descending.
//
// Team is taken from the user's first matching record in input order; for a
// user whose records span teams this is an arbitrary pick, kept for
// compatibility with the historical overview.
func UtilizationByUser(records []domain.ProductionRecord, users []domain.User, f Filter) []UserUtilization {
	filtered := f.Apply(records)

	out := make([]UserUtilization, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			continue
		}

		var (
			totalMinutes int
			team         string
			dates        = map[string]struct{}{}
		)
		for _, r := range filtered {
			if r.UserID != u.ID {
				continue
			}
			if team == "" {
				team = r.Team
			}
			totalMinutes += r.TotalUtilization
			dates[r.CompletedDate] = struct{}{}
		}
		if len(dates) == 0 {
			continue
		}

		totalHours := float64(totalMinutes) / 60
		avg := totalHours / float64(len(dates))
		if avg > workdayHours {
			avg = workdayHours
		}
		if avg <= 0 {
			continue
		}

		out = append(out, UserUtilization{
			UserID:                u.ID,
			Name:                  u.Name,
			Team:                  team,
			Days:                  len(dates),
			TotalHours:            totalHours,
			AverageHours:          avg,
			UtilizationPercentage: avg / workdayHours * 100,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageHours > out[j].AverageHours
	})
	return out
}

// TeamCount is the record count for one team on the fixed team axis.
type TeamCount struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// RecordsByTeam counts filtered records per team. Every catalog team appears,
// zero-filled, so chart axes stay stable across filters.
func RecordsByTeam(records []domain.ProductionRecord, f Filter) []TeamCount {
	filtered := f.Apply(records)

	out := make([]TeamCount, 0, len(domain.Teams))
	for _, team := range domain.Teams {
		n := 0
		for _, r := range filtered {
			if r.Team == team {
				n++
			}
		}
		out = append(out, TeamCount{Team: team, Count: n})
	}
	return out
}

// TeamTaskComposition maps the distinct task names present in one team's
// filtered records to their occurrence counts.
type TeamTaskComposition struct {
	Team  string         `json:"team"`
	Tasks map[string]int `json:"tasks"`
}

// TaskCompositionByTeam breaks each team's filtered records down by task.
// Unlike RecordsByTeam, a team excluded by an active team filter is omitted
// entirely rather than zero-filled.
func TaskCompositionByTeam(records []domain.ProductionRecord, f Filter) []TeamTaskComposition {
	filtered := f.Apply(records)

	out := make([]TeamTaskComposition, 0, len(domain.Teams))
	for _, team := range domain.Teams {
		if f.Team != "" && team != f.Team {
			continue
		}
		tasks := map[string]int{}
		for _, r := range filtered {
			if r.Team == team {
				tasks[r.ProcessName]++
			}
		}
		out = append(out, TeamTaskComposition{Team: team, Tasks: tasks})
	}
	return out
}

// DistinctTasks lists the task names present in the filtered records, sorted.
func DistinctTasks(records []domain.ProductionRecord, f Filter) []string {
	seen := map[string]struct{}{}
	for _, r := range f.Apply(records) {
		seen[r.ProcessName] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// TrendPoint is one date on the chronological overview chart.
type TrendPoint struct {
	Date                  string  `json:"date"`
	TotalMinutes          int     `json:"totalMinutes"`
	PerPersonAverageHours float64 `json:"perPersonAverageHours"`
}

// Trend builds the daily per-person average series over the filtered records.
//
// The denominator is the global count of non-admin users, independent of the
// filter. Dates are emitted ascending and each distinct date appears exactly
// once; downstream chart brushing depends on that ordering. An empty series
// is returned when there are no active users.
func Trend(records []domain.ProductionRecord, users []domain.User, f Filter) []TrendPoint {
	activeUsers := 0
	for _, u := range users {
		if u.Role != domain.RoleAdmin {
			activeUsers++
		}
	}
	if activeUsers == 0 {
		return []TrendPoint{}
	}

	filtered := f.Apply(records)
	totals := map[string]int{}
	for _, r := range filtered {
		totals[r.CompletedDate] += r.TotalUtilization
	}

	dates := make([]string, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]TrendPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, TrendPoint{
			Date:                  d,
			TotalMinutes:          totals[d],
			PerPersonAverageHours: float64(totals[d]) / 60 / float64(activeUsers),
		})
	}
	return out
}

// DailyChartPoint is one date of a single user's expected-vs-actual chart.
type DailyChartPoint struct {
	Date          string  `json:"date"`
	ActualHours   float64 `json:"actualHours"`
	ExpectedHours float64 `json:"expectedHours"`
}

// UserDailyChart aggregates one user's records per completed date. When month
// is non-empty ("YYYY-MM") only dates in that calendar month contribute.
// Actual hours come from the operator-entered minutes, expected hours from
// nominal duration times repetitions. One row per distinct date, ascending.
func UserDailyChart(records []domain.ProductionRecord, userID, month string) []DailyChartPoint {
	actual := map[string]int{}
	expected := map[string]int{}
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		if month != "" && !strings.HasPrefix(r.CompletedDate, month+"-") {
			continue
		}
		actual[r.CompletedDate] += r.ActualUtilizationUserInput
		expected[r.CompletedDate] += r.TotalUtilization * r.Count
	}

	seen := map[string]struct{}{}
	for d := range actual {
		seen[d] = struct{}{}
	}
	for d := range expected {
		seen[d] = struct{}{}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyChartPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyChartPoint{
			Date:          d,
			ActualHours:   float64(actual[d]) / 60,
			ExpectedHours: float64(expected[d]) / 60,
		})
	}
	return out
}
