package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"stayHydratedAPI/internal/corporation"
	"stayHydratedAPI/services"
)

type CorporationHandler struct {
	corporationService *services.CorporationService
	userService        *services.UserService
}

func NewCorporationHandler(corporationService *services.CorporationService, userService *services.UserService) *CorporationHandler {
	return &CorporationHandler{
		corporationService: corporationService,
		userService:        userService,
	}
}

func (h *CorporationHandler) CreateCorporation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req corporation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	corp, err := h.corporationService.CreateCorporation(ctx, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCompanyName):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAlreadyInCompany):
			respondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrCorporationExists):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("CreateCorporation Handler: Service error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to create company")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, corp)
}

func (h *CorporationHandler) JoinCorporation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req corporation.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	corp, err := h.corporationService.JoinByInviteCode(ctx, userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyInviteCode):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInviteNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrAlreadyInCompany):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("JoinCorporation Handler: Service error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to join company")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, corp)
}

func (h *CorporationHandler) LeaveCorporation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	if err := h.corporationService.LeaveCorporation(ctx, userID); err != nil {
		if errors.Is(err, services.ErrNotInCompany) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to leave company")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Left company successfully"})
}

func (h *CorporationHandler) GetMyCorporation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if u.CorporationID == nil {
		respondWithError(w, http.StatusNotFound, "Not in a company")
		return
	}

	corp, err := h.corporationService.GetCorporation(ctx, *u.CorporationID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load company")
		return
	}

	respondWithJSON(w, http.StatusOK, corp)
}

// GetInviteQR returns the company invite as a QR deep link. Manager only,
// enforced by the route.
func (h *CorporationHandler) GetInviteQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetUserByID(ctx, userID)
	if err != nil || u.CorporationID == nil {
		respondWithError(w, http.StatusNotFound, "Not in a company")
		return
	}

	qr, err := h.corporationService.InviteQR(ctx, *u.CorporationID)
	if err != nil {
		log.Printf("GetInviteQR Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate invite QR")
		return
	}

	respondWithJSON(w, http.StatusOK, qr)
}
