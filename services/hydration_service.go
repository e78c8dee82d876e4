package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayHydratedAPI/internal/hydration"
)

var ErrInvalidAmount = errors.New("amount must be a positive number of milliliters")

type HydrationService struct {
	db          *pgxpool.Pool
	userService *UserService
}

func NewHydrationService(db *pgxpool.Pool, userService *UserService) *HydrationService {
	return &HydrationService{db: db, userService: userService}
}

// LogIntake records one intake event. The user's corporation_id is
// denormalized onto the row at log time so manager queries never join
// through users for historical events.
func (s *HydrationService) LogIntake(ctx context.Context, userID uuid.UUID, amountML int, source hydration.LogSource) (*hydration.Event, error) {
	if amountML <= 0 {
		return nil, ErrInvalidAmount
	}
	if source == "" {
		source = hydration.SourceManual
	}

	event := &hydration.Event{
		ID:       uuid.New(),
		UserID:   userID,
		AmountML: amountML,
		Source:   source,
		LoggedAt: time.Now(),
	}

	query := `
	INSERT INTO hydration_logs (id, user_id, corporation_id, amount_ml, source, logged_at)
	SELECT $1, $2, u.corporation_id, $3, $4, $5
	FROM users u
	WHERE u.id = $2
	RETURNING corporation_id
	`

	err := s.db.QueryRow(ctx, query,
		event.ID, event.UserID, event.AmountML, event.Source, event.LoggedAt,
	).Scan(&event.CorporationID)
	if err != nil {
		return nil, fmt.Errorf("failed to log intake: %w", err)
	}

	return event, nil
}

// EventsInWindow fetches the user's events in the trailing window ending at
// asOf. An empty result is a valid empty case, not an error.
func (s *HydrationService) EventsInWindow(ctx context.Context, userID uuid.UUID, asOf time.Time, window time.Duration) ([]hydration.Event, error) {
	query := `
	SELECT id, user_id, corporation_id, amount_ml, source, logged_at
	FROM hydration_logs
	WHERE user_id = $1 AND logged_at >= $2 AND logged_at <= $3
	ORDER BY logged_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID, asOf.Add(-window), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query hydration logs: %w", err)
	}
	defer rows.Close()

	var events []hydration.Event
	for rows.Next() {
		var e hydration.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.CorporationID, &e.AmountML, &e.Source, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hydration log: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading hydration logs: %w", err)
	}

	return events, nil
}

// Dashboard is what the worker's home screen renders.
type Dashboard struct {
	hydration.DailyAggregate
	TargetML      int                     `json:"target_ml"`
	Percentage    int                     `json:"percentage"`
	Status        hydration.Status        `json:"status"`
	ProgressColor hydration.ProgressColor `json:"progress_color"`
	RecentLogs    []hydration.Event       `json:"recent_logs"`
}

// GetDashboard assembles the worker dashboard. The settings fetch and the
// event-window fetch are independent reads issued concurrently and joined
// before the aggregate is computed.
func (s *HydrationService) GetDashboard(ctx context.Context, userID uuid.UUID, asOf time.Time) (*Dashboard, error) {
	var (
		wg          sync.WaitGroup
		settings    *hydration.Settings
		settingsErr error
		events      []hydration.Event
		eventsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		settings, settingsErr = s.userService.GetSettings(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		events, eventsErr = s.EventsInWindow(ctx, userID, asOf, hydration.TrailingWindow)
	}()
	wg.Wait()

	if settingsErr != nil {
		return nil, settingsErr
	}
	if eventsErr != nil {
		return nil, eventsErr
	}

	agg := hydration.Aggregate(events, asOf)
	target := hydration.ResolveStoredTarget(settings) + settings.AdditionalML

	score, err := hydration.Classify(agg.TotalTodayML, target)
	if err != nil {
		return nil, fmt.Errorf("failed to classify hydration status: %w", err)
	}

	recent := events
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return &Dashboard{
		DailyAggregate: agg,
		TargetML:       target,
		Percentage:     score.Percentage,
		Status:         score.Status,
		ProgressColor:  hydration.ProgressColorBand(score.Percentage),
		RecentLogs:     recent,
	}, nil
}
