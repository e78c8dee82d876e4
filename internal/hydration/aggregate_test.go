package hydration

import (
	"testing"
	"time"
)

func ev(amount int, at time.Time) Event {
	return Event{AmountML: amount, Source: SourceManual, LoggedAt: at}
}

func TestAggregateSumsTodayRegardlessOfOrder(t *testing.T) {
	asOf := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	events := []Event{
		ev(300, asOf.Add(-2*time.Hour)),
		ev(250, asOf.Add(-5*time.Hour)),
		ev(500, asOf.Add(-1*time.Minute)),
	}

	want := 1050
	agg := Aggregate(events, asOf)
	if agg.TotalTodayML != want {
		t.Errorf("TotalTodayML = %d, want %d", agg.TotalTodayML, want)
	}

	reversed := []Event{events[2], events[1], events[0]}
	if got := Aggregate(reversed, asOf); got.TotalTodayML != want {
		t.Errorf("reversed order: TotalTodayML = %d, want %d", got.TotalTodayML, want)
	}
}

func TestAggregateExcludesOtherDays(t *testing.T) {
	asOf := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	events := []Event{
		ev(400, asOf),
		ev(999, asOf.AddDate(0, 0, -1)), // yesterday
		ev(999, asOf.AddDate(0, 0, 1)),  // tomorrow
	}

	agg := Aggregate(events, asOf)
	if agg.TotalTodayML != 400 {
		t.Errorf("TotalTodayML = %d, want 400", agg.TotalTodayML)
	}
}

func TestAggregateDayBoundsInclusive(t *testing.T) {
	asOf := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)

	events := []Event{
		ev(100, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),      // midnight, included
		ev(200, time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)),   // last whole second, included
		ev(999, time.Date(2026, 3, 14, 23, 59, 59, 5e8, time.UTC)), // past the second bound
	}

	agg := Aggregate(events, asOf)
	if agg.TotalTodayML != 300 {
		t.Errorf("TotalTodayML = %d, want 300", agg.TotalTodayML)
	}
}

func TestAggregateDSTDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Spring forward (2026-03-08): a 23-hour day. Nothing from Mar 9 may
	// leak into Mar 8's total.
	asOf := time.Date(2026, 3, 8, 12, 0, 0, 0, loc)
	events := []Event{
		ev(400, time.Date(2026, 3, 8, 8, 0, 0, 0, loc)),
		ev(999, time.Date(2026, 3, 9, 0, 30, 0, 0, loc)),
	}
	if agg := Aggregate(events, asOf); agg.TotalTodayML != 400 {
		t.Errorf("spring-forward day: TotalTodayML = %d, want 400", agg.TotalTodayML)
	}

	// Fall back (2026-11-01): a 25-hour day. The last hour still belongs
	// to the day.
	asOf = time.Date(2026, 11, 1, 23, 45, 0, 0, loc)
	events = []Event{
		ev(500, time.Date(2026, 11, 1, 23, 30, 0, 0, loc)),
	}
	if agg := Aggregate(events, asOf); agg.TotalTodayML != 500 {
		t.Errorf("fall-back day: TotalTodayML = %d, want 500", agg.TotalTodayML)
	}

	start, end := DayBounds(time.Date(2026, 3, 8, 12, 0, 0, 0, loc))
	if start.Day() != 8 || end.Day() != 8 {
		t.Errorf("bounds left the calendar day: start %v, end %v", start, end)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end bound = %v, want 23:59:59 on the same day", end)
	}
}

func TestAggregateLastLogAt(t *testing.T) {
	asOf := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	latest := asOf.Add(-10 * time.Minute)
	events := []Event{
		ev(300, asOf.Add(-6*time.Hour)),
		ev(200, latest),
		ev(150, asOf.Add(-3*time.Hour)),
	}

	agg := Aggregate(events, asOf)
	if agg.LastLogAt == nil || !agg.LastLogAt.Equal(latest) {
		t.Errorf("LastLogAt = %v, want %v", agg.LastLogAt, latest)
	}
}

func TestAggregateEmpty(t *testing.T) {
	asOf := time.Now()

	agg := Aggregate(nil, asOf)
	if agg.TotalTodayML != 0 || agg.DailyAverage7dML != 0 {
		t.Errorf("zero aggregate expected, got %+v", agg)
	}
	if agg.LastLogAt != nil {
		t.Errorf("LastLogAt should be absent for empty input, got %v", agg.LastLogAt)
	}
}

func TestAggregateTrailingAverage(t *testing.T) {
	asOf := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	// 500 ml on each of the last 5 days plus 500 today: 3000 / 7 days.
	var events []Event
	for i := 0; i < 6; i++ {
		events = append(events, ev(500, asOf.AddDate(0, 0, -i)))
	}
	// Outside the window, must not count.
	events = append(events, ev(800, asOf.AddDate(0, 0, -8)))

	agg := Aggregate(events, asOf)
	if want := 429; agg.DailyAverage7dML != want { // round(3000/7)
		t.Errorf("DailyAverage7dML = %d, want %d", agg.DailyAverage7dML, want)
	}
}

func TestAggregateWindowAlternateLength(t *testing.T) {
	asOf := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	events := []Event{
		ev(600, asOf),
		ev(600, asOf.AddDate(0, 0, -1)),
		ev(600, asOf.AddDate(0, 0, -2)),
	}

	agg := AggregateWindow(events, asOf, 3*24*time.Hour)
	if want := 600; agg.DailyAverage7dML != want { // 1800 / 3
		t.Errorf("average over 3-day window = %d, want %d", agg.DailyAverage7dML, want)
	}
}
