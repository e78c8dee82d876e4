package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayHydratedAPI/internal/warning"
)

var (
	ErrWorkerNotInCompany = errors.New("worker is not in the manager's company")
	ErrEmptyMessage       = errors.New("warning message is required")
)

type WarningService struct {
	db            *pgxpool.Pool
	notifications *NotificationService
}

func NewWarningService(db *pgxpool.Pool, notifications *NotificationService) *WarningService {
	return &WarningService{db: db, notifications: notifications}
}

// SendWarning writes a warning from a manager to a worker in the same
// company and pushes it to the worker's devices. The push is best-effort;
// the row is the source of truth.
func (s *WarningService) SendWarning(ctx context.Context, managerID uuid.UUID, corpID uuid.UUID, req *warning.SendRequest) (*warning.Warning, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	// Membership check folded into the insert: the row only lands if the
	// worker currently belongs to the manager's company.
	w := &warning.Warning{
		ID:            uuid.New(),
		CorporationID: corpID,
		ManagerID:     managerID,
		WorkerID:      req.WorkerID,
		Message:       message,
		CreatedAt:     time.Now(),
	}

	query := `
	INSERT INTO warnings (id, corporation_id, manager_id, worker_id, message, read, created_at)
	SELECT $1, $2, $3, u.id, $5, false, $6
	FROM users u
	WHERE u.id = $4 AND u.corporation_id = $2
	RETURNING id
	`

	err := s.db.QueryRow(ctx, query, w.ID, w.CorporationID, w.ManagerID, w.WorkerID, w.Message, w.CreatedAt).Scan(&w.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkerNotInCompany
		}
		return nil, fmt.Errorf("failed to send warning: %w", err)
	}

	s.notifications.PushToUser(ctx, w.WorkerID, "Hydration warning", message, map[string]any{
		"type":       "warning",
		"warning_id": w.ID.String(),
	})

	return w, nil
}

// ListForWorker returns the worker's warnings, newest first.
func (s *WarningService) ListForWorker(ctx context.Context, workerID uuid.UUID, limit int) ([]*warning.Warning, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
	SELECT id, corporation_id, manager_id, worker_id, message, read, created_at
	FROM warnings
	WHERE worker_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []*warning.Warning
	for rows.Next() {
		w := &warning.Warning{}
		if err := rows.Scan(&w.ID, &w.CorporationID, &w.ManagerID, &w.WorkerID, &w.Message, &w.Read, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

func (s *WarningService) UnreadCount(ctx context.Context, workerID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM warnings WHERE worker_id = $1 AND read = false
	`, workerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread warnings: %w", err)
	}
	return count, nil
}

// MarkRead flags one warning as read; scoped to the owner so a worker
// can't ack someone else's warning.
func (s *WarningService) MarkRead(ctx context.Context, workerID, warningID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE warnings SET read = true WHERE id = $1 AND worker_id = $2
	`, warningID, workerID)
	if err != nil {
		return fmt.Errorf("failed to mark warning read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("warning not found")
	}
	return nil
}
