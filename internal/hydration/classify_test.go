package hydration

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		totalML    int
		targetML   int
		wantPct    int
		wantStatus Status
	}{
		{"nothing logged", 0, 2000, 0, StatusCritical},
		{"exactly good boundary", 1400, 2000, 70, StatusGood},
		{"rounds up onto warning boundary", 599, 2000, 30, StatusWarning},
		{"just below warning boundary", 580, 2000, 29, StatusCritical},
		{"over target", 2600, 2000, 130, StatusGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Classify(tt.totalML, tt.targetML)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if score.Percentage != tt.wantPct {
				t.Errorf("Percentage = %d, want %d", score.Percentage, tt.wantPct)
			}
			if score.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", score.Status, tt.wantStatus)
			}
		})
	}
}

func TestClassifyZeroTarget(t *testing.T) {
	_, err := Classify(1000, 0)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	_, err = Classify(1000, -5)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("negative target: expected ErrInvalidTarget, got %v", err)
	}
}

func TestProgressColorBand(t *testing.T) {
	tests := []struct {
		pct  int
		want ProgressColor
	}{
		{90, ColorGreen},
		{75, ColorGreen},
		{74, ColorBlue},
		{50, ColorBlue},
		{49, ColorAmber},
		{0, ColorAmber},
	}

	for _, tt := range tests {
		if got := ProgressColorBand(tt.pct); got != tt.want {
			t.Errorf("ProgressColorBand(%d) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestSortWorkers(t *testing.T) {
	workers := []WorkerStatus{
		{Username: "ok", Score: Score{Percentage: 85, Status: StatusGood}},
		{Username: "low", Score: Score{Percentage: 12, Status: StatusCritical}},
		{Username: "mid", Score: Score{Percentage: 45, Status: StatusWarning}},
		{Username: "lower", Score: Score{Percentage: 5, Status: StatusCritical}},
		{Username: "barely-good", Score: Score{Percentage: 70, Status: StatusGood}},
	}

	SortWorkers(workers)

	wantOrder := []string{"lower", "low", "mid", "barely-good", "ok"}
	for i, name := range wantOrder {
		if workers[i].Username != name {
			t.Fatalf("position %d = %s, want %s", i, workers[i].Username, name)
		}
	}
}
