package domain

import (
	"errors"
	"fmt"
)

// MaxUtilizationMinutes caps any single duration or actual-time entry at an
// 8-hour working day.
const MaxUtilizationMinutes = 480

// ErrValidation marks input rejected before any store mutation is attempted.
var ErrValidation = errors.New("validation failed")

// ProductionRecord is one discrete unit of logged work.
//
// ProcessName is the single authoritative task name; the historical "task"
// JSON alias is mapped onto it at the transport boundary and never stored
// separately. UserName is a point-in-time copy of the owner's name taken at
// creation; it is deliberately not kept in sync with later renames.
type ProductionRecord struct {
	ID                         string `json:"id" bson:"id"`
	UserID                     string `json:"userId" bson:"userId"`
	UserName                   string `json:"userName" bson:"userName"`
	ProcessName                string `json:"processName" bson:"processName"`
	Team                       string `json:"team" bson:"team"`
	Frequency                  string `json:"frequency" bson:"frequency"`
	TotalUtilization           int    `json:"totalUtilization" bson:"totalUtilization"`
	Count                      int    `json:"count" bson:"count"`
	ActualUtilizationUserInput int    `json:"actualUtilizationUserInput" bson:"actualUtilizationUserInput"`
	CompletedDate              string `json:"completedDate" bson:"completedDate"`
	Remarks                    string `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

// ExpectedUtilization is the nominal minutes for all repetitions combined.
// Derived, never stored.
func (r ProductionRecord) ExpectedUtilization() int {
	return r.TotalUtilization * r.Count
}

// ActualVolume mirrors ExpectedUtilization under its historical report name.
func (r ProductionRecord) ActualVolume() int {
	return r.TotalUtilization * r.Count
}

// ActualPerDayHours converts the user-entered actual minutes to hours.
func (r ProductionRecord) ActualPerDayHours() float64 {
	return float64(r.ActualUtilizationUserInput) / 60
}

// Validate checks the invariants enforced before a record is persisted.
// Every failure wraps ErrValidation so callers can classify it without
// string matching.
func (r ProductionRecord) Validate() error {
	switch {
	case r.UserID == "":
		return fmt.Errorf("%w: userId is required", ErrValidation)
	case r.ProcessName == "":
		return fmt.Errorf("%w: processName is required", ErrValidation)
	case !ValidTeam(r.Team):
		return fmt.Errorf("%w: unknown team %q", ErrValidation, r.Team)
	case !ValidFrequency(r.Frequency):
		return fmt.Errorf("%w: unknown frequency %q", ErrValidation, r.Frequency)
	case r.TotalUtilization <= 0 || r.TotalUtilization > MaxUtilizationMinutes:
		return fmt.Errorf("%w: totalUtilization must be within 1..%d minutes", ErrValidation, MaxUtilizationMinutes)
	case r.Count < 1:
		return fmt.Errorf("%w: count must be at least 1", ErrValidation)
	case r.ActualUtilizationUserInput < 0 || r.ActualUtilizationUserInput > MaxUtilizationMinutes:
		return fmt.Errorf("%w: actualUtilizationUserInput must be within 0..%d minutes", ErrValidation, MaxUtilizationMinutes)
	case !ValidISODate(r.CompletedDate):
		return fmt.Errorf("%w: completedDate must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

// ValidISODate reports whether s is a fixed-width YYYY-MM-DD date. The fixed
// width is what makes lexicographic comparison of dates safe everywhere else.
func ValidISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
