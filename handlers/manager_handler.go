package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"stayHydratedAPI/internal/warning"
	"stayHydratedAPI/middleware"
	"stayHydratedAPI/services"
)

type ManagerHandler struct {
	managerService *services.ManagerService
	warningService *services.WarningService
	userService    *services.UserService
}

func NewManagerHandler(managerService *services.ManagerService, warningService *services.WarningService, userService *services.UserService) *ManagerHandler {
	return &ManagerHandler{
		managerService: managerService,
		warningService: warningService,
		userService:    userService,
	}
}

func (h *ManagerHandler) managerCorp(ctx context.Context, w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	managerID, ok := authedUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	u, err := h.userService.GetUserByID(ctx, managerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load manager")
		return uuid.Nil, uuid.Nil, false
	}
	if u.CorporationID == nil {
		respondWithError(w, http.StatusBadRequest, "Manager is not in a company")
		return uuid.Nil, uuid.Nil, false
	}

	return managerID, *u.CorporationID, true
}

// ListWorkers returns the worker board, critical first.
func (h *ManagerHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, corpID, ok := h.managerCorp(ctx, w, r)
	if !ok {
		return
	}

	workers, err := h.managerService.ListWorkers(ctx, corpID, time.Now())
	if err != nil {
		log.Printf("ListWorkers Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load workers")
		return
	}

	respondWithJSON(w, http.StatusOK, workers)
}

func (h *ManagerHandler) SendWarning(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	managerID, corpID, ok := h.managerCorp(ctx, w, r)
	if !ok {
		return
	}

	var req warning.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sent, err := h.warningService.SendWarning(ctx, managerID, corpID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, services.ErrWorkerNotInCompany) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("SendWarning Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to send warning")
		return
	}

	middleware.CountWarningSent()
	respondWithJSON(w, http.StatusCreated, sent)
}

// GenerateSummary snapshots today's company stats. A repeat call for the
// same date answers 409 with the already-generated signal.
func (h *ManagerHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, corpID, ok := h.managerCorp(ctx, w, r)
	if !ok {
		return
	}

	summary, err := h.managerService.GenerateDailySummary(ctx, corpID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrSummaryExists) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("GenerateSummary Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate summary")
		return
	}

	respondWithJSON(w, http.StatusCreated, summary)
}

func (h *ManagerHandler) GetSummaryHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, corpID, ok := h.managerCorp(ctx, w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	summaries, err := h.managerService.SummaryHistory(ctx, corpID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load summaries")
		return
	}

	respondWithJSON(w, http.StatusOK, summaries)
}
