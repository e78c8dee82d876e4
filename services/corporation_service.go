package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skip2/go-qrcode"

	"stayHydratedAPI/internal/corporation"
)

var (
	ErrAlreadyInCompany  = errors.New("user already belongs to a company")
	ErrNotInCompany      = errors.New("user does not belong to a company")
	ErrInviteNotFound    = errors.New("invite code not found")
	ErrCorporationExists = errors.New("corporation name already taken")
	ErrEmptyCompanyName  = errors.New("company name is required")
	ErrEmptyInviteCode   = errors.New("invite code is required")
)

type CorporationService struct {
	db *pgxpool.Pool
}

func NewCorporationService(db *pgxpool.Pool) *CorporationService {
	return &CorporationService{db: db}
}

func inviteShareLink(code string) string {
	return fmt.Sprintf("stayhydrated://company/join?inviteCode=%s", code)
}

// CreateCorporation creates the company and promotes the creator to
// manager inside one transaction.
func (s *CorporationService) CreateCorporation(ctx context.Context, creatorID uuid.UUID, req *corporation.CreateRequest) (*corporation.Corporation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyCompanyName
	}

	corp := &corporation.Corporation{
		ID:         uuid.New(),
		Name:       name,
		InviteCode: strings.ToUpper(uuid.New().String()[:8]),
		CreatedBy:  creatorID,
		CreatedAt:  time.Now(),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
	INSERT INTO corporations (id, name, invite_code, created_by, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name) DO NOTHING
	RETURNING id
	`
	err = tx.QueryRow(ctx, insert, corp.ID, corp.Name, corp.InviteCode, corp.CreatedBy, corp.CreatedAt).Scan(&corp.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCorporationExists
		}
		return nil, fmt.Errorf("failed to create corporation: %w", err)
	}

	// Conditional write: the creator must not already be in a company.
	tag, err := tx.Exec(ctx, `
		UPDATE users SET corporation_id = $1, role = 'manager', updated_at = NOW()
		WHERE id = $2 AND corporation_id IS NULL
	`, corp.ID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign creator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAlreadyInCompany
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return corp, nil
}

func (s *CorporationService) GetCorporation(ctx context.Context, corpID uuid.UUID) (*corporation.Corporation, error) {
	query := `
	SELECT id, name, invite_code, created_by, created_at
	FROM corporations
	WHERE id = $1
	`

	corp := &corporation.Corporation{}
	err := s.db.QueryRow(ctx, query, corpID).Scan(
		&corp.ID, &corp.Name, &corp.InviteCode, &corp.CreatedBy, &corp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("corporation not found")
		}
		return nil, fmt.Errorf("failed to get corporation: %w", err)
	}

	return corp, nil
}

// JoinByInviteCode attaches the user to the company behind the invite code.
// Membership is claimed with a single conditional UPDATE, so two sessions
// racing to join can't both win. The follow-up backfill of past logs is a
// second independent statement: if it fails the user is joined but old
// events stay unscoped, which is accepted and logged.
func (s *CorporationService) JoinByInviteCode(ctx context.Context, userID uuid.UUID, inviteCode string) (*corporation.Corporation, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, ErrEmptyInviteCode
	}

	corp := &corporation.Corporation{}
	err := s.db.QueryRow(ctx, `
		SELECT id, name, invite_code, created_by, created_at
		FROM corporations WHERE invite_code = $1
	`, code).Scan(&corp.ID, &corp.Name, &corp.InviteCode, &corp.CreatedBy, &corp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE users SET corporation_id = $1, updated_at = NOW()
		WHERE id = $2 AND corporation_id IS NULL
	`, corp.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to join company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAlreadyInCompany
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE hydration_logs SET corporation_id = $1 WHERE user_id = $2
	`, corp.ID, userID); err != nil {
		log.Printf("JoinByInviteCode: joined user %s but failed to backfill logs: %v", userID, err)
	}

	return corp, nil
}

// LeaveCorporation detaches the user and unscopes their logs. Same
// non-atomic two-statement shape as joining.
func (s *CorporationService) LeaveCorporation(ctx context.Context, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET corporation_id = NULL, role = 'worker', updated_at = NOW()
		WHERE id = $1 AND corporation_id IS NOT NULL
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to leave company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotInCompany
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE hydration_logs SET corporation_id = NULL WHERE user_id = $1
	`, userID); err != nil {
		log.Printf("LeaveCorporation: user %s left but failed to unscope logs: %v", userID, err)
	}

	return nil
}

// InviteQR renders the invite as a QR deep link for the mobile join screen.
func (s *CorporationService) InviteQR(ctx context.Context, corpID uuid.UUID) (*corporation.InviteQR, error) {
	corp, err := s.GetCorporation(ctx, corpID)
	if err != nil {
		return nil, err
	}

	link := inviteShareLink(corp.InviteCode)
	pngBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}

	return &corporation.InviteQR{
		InviteCode:   corp.InviteCode,
		ShareLink:    link,
		QrCodeBase64: base64.StdEncoding.EncodeToString(pngBytes),
	}, nil
}
