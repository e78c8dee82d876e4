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

// The invalid-amount path is rejected before the service touches the
// store, so these run against a handler wired with no database.

func newAuthedLogRequest(t *testing.T, body string) *http.Request {
	token, err := middleware.IssueToken(uuid.New().String(), "worker")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/hydration/log", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLogIntakeRejectsMalformedBody(t *testing.T) {
	handler := NewHydrationHandler(services.NewHydrationService(nil, nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.LogIntake))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, newAuthedLogRequest(t, "{not json"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestLogIntakeRejectsNonPositiveAmount(t *testing.T) {
	handler := NewHydrationHandler(services.NewHydrationService(nil, nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.LogIntake))

	for _, body := range []string{`{"amount_ml": 0}`, `{"amount_ml": -300}`} {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, newAuthedLogRequest(t, body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestLogIntakeRequiresAuth(t *testing.T) {
	handler := NewHydrationHandler(services.NewHydrationService(nil, nil))
	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.LogIntake))

	req := httptest.NewRequest("POST", "/api/v1/hydration/log", strings.NewReader(`{"amount_ml": 250}`))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
