package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"stayHydratedAPI/internal/corporation"
	"stayHydratedAPI/internal/hydration"
	"stayHydratedAPI/internal/notification"
	"stayHydratedAPI/internal/user"
	"stayHydratedAPI/internal/warning"
)

// Input validation happens before any store call, so these run without a
// database.

func TestLogIntakeRejectsNonPositiveAmount(t *testing.T) {
	svc := NewHydrationService(nil, nil)

	for _, amount := range []int{0, -250} {
		_, err := svc.LogIntake(context.Background(), uuid.New(), amount, hydration.SourceManual)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestUpdateSettingsRejectsOutOfRangeValues(t *testing.T) {
	svc := NewUserService(nil)
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name     string
		settings hydration.Settings
	}{
		{"target too low", hydration.Settings{HydrationTargetML: 400, ActivityLevel: hydration.ActivityLight}},
		{"target too high", hydration.Settings{HydrationTargetML: 6000, ActivityLevel: hydration.ActivityLight}},
		{"negative additional", hydration.Settings{HydrationTargetML: 2000, AdditionalML: -100, ActivityLevel: hydration.ActivityLight}},
		{"bogus activity", hydration.Settings{HydrationTargetML: 2000, ActivityLevel: "extreme"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateSettings(ctx, userID, &tc.settings)
			if !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestSignUpRejectsBadInput(t *testing.T) {
	svc := NewAuthService(nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, &user.SignUpRequest{Email: "a@b.com", Username: "al", Password: "short"}); err == nil {
		t.Error("short password: expected error, got nil")
	}
	if _, err := svc.SignUp(ctx, &user.SignUpRequest{Username: "al", Password: "longenough"}); err == nil {
		t.Error("missing email: expected error, got nil")
	}
	if _, err := svc.SignUp(ctx, &user.SignUpRequest{Email: "a@b.com", Username: "al", Password: "longenough", Role: "owner"}); err == nil {
		t.Error("invalid role: expected error, got nil")
	}
}

func TestSendWarningRejectsEmptyMessage(t *testing.T) {
	svc := NewWarningService(nil, nil)

	req := &warning.SendRequest{WorkerID: uuid.New(), Message: "   "}
	if _, err := svc.SendWarning(context.Background(), uuid.New(), uuid.New(), req); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage for blank message, got %v", err)
	}
}

func TestCorporationInputValidation(t *testing.T) {
	svc := NewCorporationService(nil)
	ctx := context.Background()

	if _, err := svc.CreateCorporation(ctx, uuid.New(), &corporation.CreateRequest{Name: "  "}); !errors.Is(err, ErrEmptyCompanyName) {
		t.Errorf("blank name: expected ErrEmptyCompanyName, got %v", err)
	}
	if _, err := svc.JoinByInviteCode(ctx, uuid.New(), ""); !errors.Is(err, ErrEmptyInviteCode) {
		t.Errorf("blank invite code: expected ErrEmptyInviteCode, got %v", err)
	}
}

func TestRegisterDeviceRejectsEmptyToken(t *testing.T) {
	svc := NewNotificationService(nil)

	req := &notification.RegisterDeviceRequest{Token: "", Platform: "ios"}
	if err := svc.RegisterDevice(context.Background(), uuid.New(), req); !errors.Is(err, ErrEmptyDeviceToken) {
		t.Errorf("expected ErrEmptyDeviceToken, got %v", err)
	}
}
