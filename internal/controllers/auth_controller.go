package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/middleware"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type AuthController struct {
	authSvc *services.AuthService
}

func NewAuthController(authSvc *services.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// CreateSession upserts the caller's user row from the verified token.
// First-time callers get role NONE and must pick one before using the
// role-gated surface. Body values fill claim gaps but never override
// the token subject.
func (c *AuthController) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ext, ok := ctx.Value(middleware.ContextKeyUserID).(string)
	if !ok || ext == "" {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil)
		return
	}

	fullName, _ := ctx.Value(middleware.ContextKeyFullName).(string)
	email, _ := ctx.Value(middleware.ContextKeyEmail).(string)

	var req dtos.SessionRequest
	if r.Body != nil {
		// body is optional; decode errors on an empty body are fine
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if fullName == "" {
		fullName = req.FullName
	}
	if email == "" {
		email = req.Email
	}

	user, err := c.authSvc.Authenticate(ctx, ext, fullName, email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// SelectRole commits the caller to STUDENT or LANDLORD.
func (c *AuthController) SelectRole(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req dtos.SelectRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid role selection", nil, err)
		return
	}

	user, err := c.authSvc.SelectRole(r.Context(), caller.ID, models.RoleType(req.Role))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
