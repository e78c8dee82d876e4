package hydration

import (
	"math"
	"time"
)

// TrailingWindow is the range the rolling daily average is computed over.
const TrailingWindow = 7 * 24 * time.Hour

// DayBounds returns the inclusive start and end of the calendar day
// containing asOf, in asOf's location. The end bound is 23:59:59 at second
// granularity: events stamped later within that final second fall outside
// the window. Both bounds are built from the civil date, not by adding a
// fixed duration, so DST days keep their real length.
func DayBounds(asOf time.Time) (time.Time, time.Time) {
	y, m, d := asOf.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, asOf.Location())
	end := time.Date(y, m, d, 23, 59, 59, 0, asOf.Location())
	return start, end
}

// Aggregate folds a list of logged events into the day totals shown on the
// dashboard: today's sum, the most recent log today, and the trailing
// 7-day daily average. Pure function of its inputs; event order does not
// matter. An empty or nil list yields a zero aggregate.
func Aggregate(events []Event, asOf time.Time) DailyAggregate {
	return AggregateWindow(events, asOf, TrailingWindow)
}

// AggregateWindow is Aggregate with a configurable trailing window. The
// average divides by the number of whole days the window spans (ceil,
// minimum 1), so shorter or longer windows stay correct.
func AggregateWindow(events []Event, asOf time.Time, window time.Duration) DailyAggregate {
	dayStart, dayEnd := DayBounds(asOf)
	windowStart := asOf.Add(-window)

	agg := DailyAggregate{}
	windowTotal := 0

	for _, e := range events {
		if !e.LoggedAt.Before(windowStart) && !e.LoggedAt.After(asOf) {
			windowTotal += e.AmountML
		}
		if e.LoggedAt.Before(dayStart) || e.LoggedAt.After(dayEnd) {
			continue
		}
		agg.TotalTodayML += e.AmountML
		if agg.LastLogAt == nil || e.LoggedAt.After(*agg.LastLogAt) {
			t := e.LoggedAt
			agg.LastLogAt = &t
		}
	}

	days := int(math.Ceil(window.Hours() / 24))
	if days < 1 {
		days = 1
	}
	agg.DailyAverage7dML = int(math.Round(float64(windowTotal) / float64(days)))

	return agg
}
