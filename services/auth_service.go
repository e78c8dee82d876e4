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
	"golang.org/x/crypto/bcrypt"

	"stayHydratedAPI/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService struct {
	db *pgxpool.Pool
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{db: db}
}

// SignUp creates a user with a bcrypt password hash. Plaintext never
// touches the database.
func (s *AuthService) SignUp(ctx context.Context, req *user.SignUpRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Username == "" {
		return nil, fmt.Errorf("email and username are required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	role := req.Role
	if role == "" {
		role = user.RoleWorker
	}
	if role != user.RoleWorker && role != user.RoleManager {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  req.Username,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
	INSERT INTO users (id, email, username, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (email) DO NOTHING
	RETURNING id, email, username, role, corporation_id, created_at, updated_at
	`

	err = s.db.QueryRow(ctx, query,
		u.ID, u.Email, u.Username, string(hash), u.Role, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID, &u.Email, &u.Username, &u.Role, &u.CorporationID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Login verifies the password against the stored bcrypt hash.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	query := `
	SELECT id, email, username, password_hash, role, corporation_id, created_at, updated_at
	FROM users
	WHERE email = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.CorporationID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn a comparison anyway so missing accounts take as long
			// as wrong passwords.
			bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000000000000000000000000000000000"), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	u.PasswordHash = ""
	return u, nil
}
