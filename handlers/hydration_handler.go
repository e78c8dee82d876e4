package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"stayHydratedAPI/internal/hydration"
	"stayHydratedAPI/middleware"
	"stayHydratedAPI/services"
)

type HydrationHandler struct {
	hydrationService *services.HydrationService
}

func NewHydrationHandler(hydrationService *services.HydrationService) *HydrationHandler {
	return &HydrationHandler{
		hydrationService: hydrationService,
	}
}

type logIntakeRequest struct {
	AmountML int                 `json:"amount_ml"`
	Source   hydration.LogSource `json:"source,omitempty"`
}

func (h *HydrationHandler) LogIntake(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req logIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.hydrationService.LogIntake(ctx, userID, req.AmountML, req.Source)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("LogIntake Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to log intake")
		return
	}

	middleware.CountIntakeLog()
	respondWithJSON(w, http.StatusCreated, event)
}

func (h *HydrationHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.hydrationService.GetDashboard(ctx, userID, time.Now())
	if err != nil {
		if errors.Is(err, hydration.ErrInvalidTarget) {
			respondWithError(w, http.StatusInternalServerError, "Hydration target is not configured")
			return
		}
		log.Printf("GetDashboard Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

func (h *HydrationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	events, err := h.hydrationService.EventsInWindow(ctx, userID, time.Now(), hydration.TrailingWindow)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	if events == nil {
		events = []hydration.Event{}
	}
	respondWithJSON(w, http.StatusOK, events)
}
