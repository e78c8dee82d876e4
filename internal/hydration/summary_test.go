package hydration

import (
	"testing"
	"time"
)

func TestBuildSummary(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	workers := []WorkerStatus{
		{TotalTodayML: 1800, Score: Score{Percentage: 90, Status: StatusGood}},
		{TotalTodayML: 700, Score: Score{Percentage: 35, Status: StatusWarning}},
		{TotalTodayML: 0, Score: Score{Percentage: 0, Status: StatusCritical}},
	}

	s := BuildSummary(workers, date)

	if s.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", s.TotalUsers)
	}
	if s.ActiveUsers != 2 {
		t.Errorf("ActiveUsers = %d, want 2", s.ActiveUsers)
	}
	if s.TotalHydrationML != 2500 {
		t.Errorf("TotalHydrationML = %d, want 2500", s.TotalHydrationML)
	}
	if want := 833; s.AverageHydrationML != want { // round(2500/3)
		t.Errorf("AverageHydrationML = %d, want %d", s.AverageHydrationML, want)
	}
	if s.UsersBelowTarget != 2 {
		t.Errorf("UsersBelowTarget = %d, want 2", s.UsersBelowTarget)
	}
}

func TestBuildSummaryEmptyCompany(t *testing.T) {
	s := BuildSummary(nil, time.Now())
	if s.TotalUsers != 0 || s.ActiveUsers != 0 || s.AverageHydrationML != 0 {
		t.Errorf("empty company should produce zero summary, got %+v", s)
	}
}
