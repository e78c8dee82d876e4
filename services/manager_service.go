package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayHydratedAPI/internal/hydration"
)

var ErrSummaryExists = errors.New("summary already generated for this date")

type ManagerService struct {
	db *pgxpool.Pool
}

func NewManagerService(db *pgxpool.Pool) *ManagerService {
	return &ManagerService{db: db}
}

// ListWorkers returns every worker in the company with today's total,
// target, percentage and severity, ordered critical-first then lowest
// percentage first.
func (s *ManagerService) ListWorkers(ctx context.Context, corpID uuid.UUID, asOf time.Time) ([]hydration.WorkerStatus, error) {
	dayStart, dayEnd := hydration.DayBounds(asOf)

	query := `
	SELECT
		u.id,
		u.username,
		COALESCE(SUM(h.amount_ml), 0) AS total_today_ml,
		MAX(h.logged_at) AS last_log_at,
		COALESCE(st.hydration_target_ml, $4) + COALESCE(st.additional_ml, 0) AS target_ml
	FROM users u
	LEFT JOIN hydration_logs h
		ON h.user_id = u.id AND h.logged_at >= $2 AND h.logged_at <= $3
	LEFT JOIN user_settings st ON st.user_id = u.id
	WHERE u.corporation_id = $1 AND u.role = 'worker'
	GROUP BY u.id, u.username, st.hydration_target_ml, st.additional_ml
	`

	rows, err := s.db.Query(ctx, query, corpID, dayStart, dayEnd, hydration.DefaultTargetML)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []hydration.WorkerStatus
	for rows.Next() {
		var w hydration.WorkerStatus
		var id uuid.UUID
		if err := rows.Scan(&id, &w.Username, &w.TotalTodayML, &w.LastLogAt, &w.TargetML); err != nil {
			return nil, fmt.Errorf("failed to scan worker row: %w", err)
		}
		w.UserID = id.String()

		score, err := hydration.Classify(w.TotalTodayML, w.TargetML)
		if err != nil {
			return nil, fmt.Errorf("failed to classify worker %s: %w", w.UserID, err)
		}
		w.Score = score
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading worker rows: %w", err)
	}

	hydration.SortWorkers(workers)
	return workers, nil
}

// GenerateDailySummary snapshots the company's day. Idempotent per
// (corporation, date): the unique constraint on the table plus the
// conflict-ignoring insert make the second attempt report ErrSummaryExists
// instead of writing a duplicate.
func (s *ManagerService) GenerateDailySummary(ctx context.Context, corpID uuid.UUID, asOf time.Time) (*hydration.Summary, error) {
	workers, err := s.ListWorkers(ctx, corpID, asOf)
	if err != nil {
		return nil, err
	}

	date := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	summary := hydration.BuildSummary(workers, date)

	query := `
	INSERT INTO corporation_daily_summaries (
		id, corporation_id, summary_date, total_users, active_users,
		total_hydration_ml, average_hydration_ml, users_below_target, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (corporation_id, summary_date) DO NOTHING
	`

	tag, err := s.db.Exec(ctx, query,
		uuid.New(), corpID, date,
		summary.TotalUsers, summary.ActiveUsers,
		summary.TotalHydrationML, summary.AverageHydrationML, summary.UsersBelowTarget,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSummaryExists
	}

	return &summary, nil
}

// SummaryHistory lists persisted snapshots, newest first.
func (s *ManagerService) SummaryHistory(ctx context.Context, corpID uuid.UUID, limit int) ([]hydration.Summary, error) {
	if limit <= 0 || limit > 90 {
		limit = 30
	}

	query := `
	SELECT summary_date, total_users, active_users, total_hydration_ml, average_hydration_ml, users_below_target
	FROM corporation_daily_summaries
	WHERE corporation_id = $1
	ORDER BY summary_date DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, corpID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []hydration.Summary
	for rows.Next() {
		var sum hydration.Summary
		if err := rows.Scan(
			&sum.SummaryDate, &sum.TotalUsers, &sum.ActiveUsers,
			&sum.TotalHydrationML, &sum.AverageHydrationML, &sum.UsersBelowTarget,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
