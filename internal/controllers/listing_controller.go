package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type ListingController struct {
	listingSvc *services.ListingService
	authSvc    *services.AuthService
}

func NewListingController(listingSvc *services.ListingService, authSvc *services.AuthService) *ListingController {
	return &ListingController{listingSvc: listingSvc, authSvc: authSvc}
}

// ListMy returns the caller's own properties, newest first.
func (c *ListingController) ListMy(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	props, err := c.listingSvc.ListByLandlord(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// Browse returns the student-facing feed.
func (c *ListingController) Browse(w http.ResponseWriter, r *http.Request) {
	props, err := c.listingSvc.ListBrowse(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// GetByID returns a single property detail for any authenticated user.
func (c *ListingController) GetByID(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := parsePathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	prop, err := c.listingSvc.GetByID(r.Context(), propertyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// Upsert creates or updates one of the caller's properties.
func (c *ListingController) Upsert(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req dtos.PropertyUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}

	prop, err := c.listingSvc.Upsert(r.Context(), caller.ID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := http.StatusOK
	if req.PropertyID == nil {
		status = http.StatusCreated
	}
	utils.RespondWithJSON(w, status, prop)
}

// Delete removes one of the caller's properties; children cascade.
func (c *ListingController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	propertyID, ok := parsePathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	if err := c.listingSvc.Delete(r.Context(), propertyID, caller.ID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
