package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayHydratedAPI/internal/notification"
)

var ErrEmptyDeviceToken = errors.New("device token is required")

type NotificationService struct {
	db           *pgxpool.Pool
	pushProvider notification.PushProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

// SetPushProvider injects the push backend. Without one, pushes are
// silently skipped and only the database rows are written.
func (s *NotificationService) SetPushProvider(p notification.PushProvider) {
	s.pushProvider = p
}

// RegisterDevice upserts the device token for push delivery.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, req *notification.RegisterDeviceRequest) error {
	if req.Token == "" {
		return ErrEmptyDeviceToken
	}

	query := `
	INSERT INTO device_tokens (user_id, token, platform, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (user_id, token) DO UPDATE SET
		platform = $3,
		updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, userID, req.Token, req.Platform); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

func (s *NotificationService) tokensForUser(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, token, platform, updated_at
		FROM device_tokens WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// PushToUser delivers a push to all of the user's devices, best-effort.
func (s *NotificationService) PushToUser(ctx context.Context, userID uuid.UUID, title, body string, data map[string]any) {
	if s.pushProvider == nil {
		return
	}

	tokens, err := s.tokensForUser(ctx, userID)
	if err != nil {
		log.Printf("PushToUser: could not load tokens for %s: %v", userID, err)
		return
	}

	if err := s.pushProvider.SendPush(ctx, tokens, title, body, data); err != nil {
		log.Printf("PushToUser: delivery to %s failed: %v", userID, err)
	}
}
