package hydration

import (
	"math"
	"time"
)

// Summary is the once-daily company rollup. Persistence enforces one row
// per (corporation, date); recomputing the numbers here is always safe.
type Summary struct {
	SummaryDate        time.Time `json:"summary_date"`
	TotalUsers         int       `json:"total_users"`
	ActiveUsers        int       `json:"active_users"`
	TotalHydrationML   int       `json:"total_hydration_ml"`
	AverageHydrationML int       `json:"average_hydration_ml"`
	UsersBelowTarget   int       `json:"users_below_target"`
}

// BuildSummary rolls a company's worker statuses into the daily snapshot.
// "Below target" uses the ManagerSeverity good-floor (70%), not the
// progress-bar bands.
func BuildSummary(workers []WorkerStatus, date time.Time) Summary {
	s := Summary{SummaryDate: date, TotalUsers: len(workers)}

	for _, w := range workers {
		s.TotalHydrationML += w.TotalTodayML
		if w.TotalTodayML > 0 {
			s.ActiveUsers++
		}
		if w.Percentage < goodFloorPct {
			s.UsersBelowTarget++
		}
	}

	if len(workers) > 0 {
		s.AverageHydrationML = int(math.Round(float64(s.TotalHydrationML) / float64(len(workers))))
	}

	return s
}
