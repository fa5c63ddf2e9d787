package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type SavedPropertyController struct {
	savedSvc *services.SavedPropertyService
	authSvc  *services.AuthService
}

func NewSavedPropertyController(savedSvc *services.SavedPropertyService, authSvc *services.AuthService) *SavedPropertyController {
	return &SavedPropertyController{savedSvc: savedSvc, authSvc: authSvc}
}

// Toggle flips the saved state and reports the new one.
func (c *SavedPropertyController) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req dtos.ToggleSavedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid toggle request", nil, err)
		return
	}

	saved, err := c.savedSvc.Toggle(r.Context(), caller.ID, req.PropertyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ToggleSavedResponse{Saved: saved})
}

// List returns the caller's saved properties, most recently saved first.
func (c *SavedPropertyController) List(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	listings, err := c.savedSvc.ListSaved(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listings)
}
