package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"stayHydratedAPI/middleware"
	"stayHydratedAPI/services"
)

// Bad input answers 400; only store failures answer 500. These requests
// are all rejected by service-side validation before any store call, so
// the handlers run without a database.

func newAuthedRequest(t *testing.T, method, target, body string) *http.Request {
	token, err := middleware.IssueToken(uuid.New().String(), "worker")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUpdateSettingsAnswers400OnBadInput(t *testing.T) {
	handler := NewUserHandler(services.NewUserService(nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.UpdateSettings))

	cases := []string{
		`{"hydration_target_ml": 400, "activity_level": "light"}`,
		`{"hydration_target_ml": 6000, "activity_level": "light"}`,
		`{"hydration_target_ml": 2000, "activity_level": "extreme"}`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, newAuthedRequest(t, "PUT", "/api/v1/user/settings", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400; body: %s", body, rec.Code, rec.Body.String())
		}
	}
}

func TestRegisterDeviceAnswers400OnEmptyToken(t *testing.T) {
	handler := NewNotificationHandler(services.NewNotificationService(nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.RegisterDevice))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, newAuthedRequest(t, "POST", "/api/v1/notifications/device", `{"token": "", "platform": "ios"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCorporationAnswers400OnEmptyName(t *testing.T) {
	handler := NewCorporationHandler(services.NewCorporationService(nil), services.NewUserService(nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.CreateCorporation))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, newAuthedRequest(t, "POST", "/api/v1/corporation", `{"name": "   "}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestJoinCorporationAnswers400OnEmptyCode(t *testing.T) {
	handler := NewCorporationHandler(services.NewCorporationService(nil), services.NewUserService(nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.JoinCorporation))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, newAuthedRequest(t, "POST", "/api/v1/corporation/join", `{"invite_code": ""}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}
