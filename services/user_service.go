package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayHydratedAPI/internal/hydration"
	"stayHydratedAPI/internal/user"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidSettings = errors.New("invalid settings")
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	query := `
	SELECT id, email, username, role, corporation_id, created_at, updated_at
	FROM users
	WHERE id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Email, &u.Username, &u.Role, &u.CorporationID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	query := `
	UPDATE users
	SET
		username = COALESCE(NULLIF($2, ''), username),
		email = COALESCE(NULLIF($3, ''), email),
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, email, username, role, corporation_id, created_at, updated_at
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, userID, req.Username, req.Email).Scan(
		&u.ID, &u.Email, &u.Username, &u.Role, &u.CorporationID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// GetSettings returns the user's hydration settings, inserting the default
// row on first fetch. "No rows" is an empty/default case here, never an
// error.
func (s *UserService) GetSettings(ctx context.Context, userID uuid.UUID) (*hydration.Settings, error) {
	query := `
	SELECT hydration_target_ml, additional_ml, weight_kg, activity_level, works_indoors
	FROM user_settings
	WHERE user_id = $1
	`

	settings := &hydration.Settings{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&settings.HydrationTargetML,
		&settings.AdditionalML,
		&settings.WeightKG,
		&settings.ActivityLevel,
		&settings.WorksIndoors,
	)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings = &hydration.Settings{
		HydrationTargetML: hydration.DefaultTargetML,
		ActivityLevel:     hydration.ActivityModerate,
		WorksIndoors:      true,
	}

	insert := `
	INSERT INTO user_settings (user_id, hydration_target_ml, additional_ml, activity_level, works_indoors, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := s.db.Exec(ctx, insert,
		userID, settings.HydrationTargetML, settings.AdditionalML,
		settings.ActivityLevel, settings.WorksIndoors,
	); err != nil {
		return nil, fmt.Errorf("failed to insert default settings: %w", err)
	}

	return settings, nil
}

// UpdateSettings validates and saves the profile. Last write wins; there is
// no optimistic locking across sessions.
func (s *UserService) UpdateSettings(ctx context.Context, userID uuid.UUID, settings *hydration.Settings) (*hydration.Settings, error) {
	if settings.HydrationTargetML < hydration.MinStoredTargetML || settings.HydrationTargetML > hydration.MaxStoredTargetML {
		return nil, fmt.Errorf("%w: hydration target must be between %d and %d ml", ErrInvalidSettings, hydration.MinStoredTargetML, hydration.MaxStoredTargetML)
	}
	if settings.AdditionalML < 0 {
		return nil, fmt.Errorf("%w: additional ml cannot be negative", ErrInvalidSettings)
	}
	switch settings.ActivityLevel {
	case hydration.ActivityLight, hydration.ActivityModerate, hydration.ActivityHeavy:
	default:
		return nil, fmt.Errorf("%w: unknown activity level %q", ErrInvalidSettings, settings.ActivityLevel)
	}
	if settings.WeightKG != nil && (*settings.WeightKG <= 0 || *settings.WeightKG > 500) {
		return nil, fmt.Errorf("%w: weight out of range", ErrInvalidSettings)
	}

	query := `
	INSERT INTO user_settings (user_id, hydration_target_ml, additional_ml, weight_kg, activity_level, works_indoors, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (user_id) DO UPDATE SET
		hydration_target_ml = $2,
		additional_ml = $3,
		weight_kg = $4,
		activity_level = $5,
		works_indoors = $6,
		updated_at = NOW()
	`

	_, err := s.db.Exec(ctx, query,
		userID, settings.HydrationTargetML, settings.AdditionalML,
		settings.WeightKG, settings.ActivityLevel, settings.WorksIndoors,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}
