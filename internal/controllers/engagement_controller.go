package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type EngagementController struct {
	engagementSvc *services.EngagementService
	authSvc       *services.AuthService
}

func NewEngagementController(engagementSvc *services.EngagementService, authSvc *services.AuthService) *EngagementController {
	return &EngagementController{engagementSvc: engagementSvc, authSvc: authSvc}
}

// SendInquiry opens a PENDING inquiry thread on a property.
func (c *EngagementController) SendInquiry(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req dtos.SendInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid inquiry", nil, err)
		return
	}

	inq, err := c.engagementSvc.SendInquiry(r.Context(), caller.ID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, inq)
}

// RespondToInquiry stores the landlord's response text and marks the
// inquiry RESPONDED.
func (c *EngagementController) RespondToInquiry(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	inquiryID, ok := parsePathUUID(w, r, "inquiryId")
	if !ok {
		return
	}

	var req dtos.RespondToInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}

	if err := c.engagementSvc.RespondToInquiry(r.Context(), caller.ID, inquiryID, req.Response); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "responded"})
}

// UpdateInquiryStatus sets an inquiry's status directly, subject to the
// legal-transition rules.
func (c *EngagementController) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	inquiryID, ok := parsePathUUID(w, r, "inquiryId")
	if !ok {
		return
	}

	var req dtos.UpdateInquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}

	if err := c.engagementSvc.UpdateInquiryStatus(r.Context(), caller.ID, inquiryID, models.InquiryStatusType(req.Status)); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// ScheduleViewing books a REQUESTED viewing slot.
func (c *EngagementController) ScheduleViewing(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req dtos.ScheduleViewingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid viewing request", nil, err)
		return
	}

	v, err := c.engagementSvc.ScheduleViewing(r.Context(), caller.ID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, v)
}

// UpdateViewingStatus confirms or declines a viewing on one of the
// caller's properties.
func (c *EngagementController) UpdateViewingStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	viewingID, ok := parsePathUUID(w, r, "viewingId")
	if !ok {
		return
	}

	var req dtos.UpdateViewingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}

	if err := c.engagementSvc.UpdateViewingStatus(r.Context(), caller.ID, viewingID, models.ViewingStatusType(req.Status)); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// GetPropertyEngagement is the landlord's management view: the property
// joined with its full inquiry and viewing history.
func (c *EngagementController) GetPropertyEngagement(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	propertyID, ok := parsePathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	dto, err := c.engagementSvc.GetForLandlord(r.Context(), caller.ID, propertyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// GetMyEngagement is the student's view: every property they inquired
// about, with only their own messages.
func (c *EngagementController) GetMyEngagement(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	threads, err := c.engagementSvc.GetForStudent(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, threads)
}
