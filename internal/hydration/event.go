package hydration

import (
	"time"

	"github.com/google/uuid"
)

type LogSource string

const (
	SourceManual LogSource = "manual"
	SourceOther  LogSource = "other"
)

// Event is a single recorded water intake. Rows are immutable once written;
// the only mutation in the system is the bulk corporation_id patch on
// company join/leave.
type Event struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	CorporationID *uuid.UUID `json:"corporation_id,omitempty"`
	AmountML      int        `json:"amount_ml"`
	Source        LogSource  `json:"source"`
	LoggedAt      time.Time  `json:"logged_at"`
}

// DailyAggregate is recomputed on demand, never persisted per-user.
type DailyAggregate struct {
	TotalTodayML     int        `json:"total_today_ml"`
	LastLogAt        *time.Time `json:"last_log_at,omitempty"`
	DailyAverage7dML int        `json:"daily_average_7d_ml"`
}
