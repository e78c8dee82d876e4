package hydration

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrInvalidTarget is returned when a consumption ratio is requested
// against a zero or negative target. Callers must surface it rather than
// coerce the percentage to zero.
var ErrInvalidTarget = errors.New("hydration target must be positive")

type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// ManagerSeverity thresholds. These drive the manager console ordering and
// are deliberately independent from the progress-bar color bands below.
const (
	warningFloorPct = 30
	goodFloorPct    = 70
)

// Score is the classified consumption ratio for one worker.
type Score struct {
	Percentage int    `json:"percentage"`
	Status     Status `json:"status"`
}

// Classify maps today's total against the daily target. Boundary values
// belong to the lower-severity bucket: exactly 30% is warning, exactly 70%
// is good.
func Classify(totalTodayML, targetML int) (Score, error) {
	if targetML <= 0 {
		return Score{}, ErrInvalidTarget
	}

	pct := int(math.Round(float64(totalTodayML) / float64(targetML) * 100))

	status := StatusGood
	switch {
	case pct < warningFloorPct:
		status = StatusCritical
	case pct < goodFloorPct:
		status = StatusWarning
	}

	return Score{Percentage: pct, Status: status}, nil
}

// StatusRank orders severities for the manager worker list: critical
// first, good last.
func StatusRank(s Status) int {
	switch s {
	case StatusCritical:
		return 0
	case StatusWarning:
		return 1
	default:
		return 2
	}
}

// ProgressColor is the individual progress-bar color band. This is a
// different policy than the good/warning/critical buckets and the two must
// not be unified: merging them would silently change one of the call sites.
type ProgressColor string

const (
	ColorGreen ProgressColor = "green"
	ColorBlue  ProgressColor = "blue"
	ColorAmber ProgressColor = "amber"
)

// ProgressColorBand maps a percentage to the progress-bar color.
func ProgressColorBand(percentage int) ProgressColor {
	switch {
	case percentage >= 75:
		return ColorGreen
	case percentage >= 50:
		return ColorBlue
	default:
		return ColorAmber
	}
}

// WorkerStatus is one row of the manager console listing.
type WorkerStatus struct {
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	TotalTodayML int        `json:"total_today_ml"`
	TargetML     int        `json:"target_ml"`
	LastLogAt    *time.Time `json:"last_log_at,omitempty"`
	Score
}

// SortWorkers orders the manager list by attention priority: severity rank
// ascending, then percentage ascending within a rank.
func SortWorkers(workers []WorkerStatus) {
	sort.SliceStable(workers, func(i, j int) bool {
		ri, rj := StatusRank(workers[i].Status), StatusRank(workers[j].Status)
		if ri != rj {
			return ri < rj
		}
		return workers[i].Percentage < workers[j].Percentage
	})
}
