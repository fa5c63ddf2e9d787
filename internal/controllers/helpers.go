package controllers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/studentnest/studentnest-backend/internal/middleware"
	"github.com/studentnest/studentnest-backend/internal/models"
	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

var validate = validator.New()

// resolveCaller maps the verified token subject to the internal user row.
// A valid token whose subject has never hit the session endpoint resolves
// to not_found (404): the token is fine, the user row just doesn't exist
// yet.
func resolveCaller(r *http.Request, authSvc *services.AuthService) (*models.User, error) {
	ext, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok || ext == "" {
		return nil, errors.New("missing subject in context")
	}
	return authSvc.GetByExternalID(r.Context(), ext)
}

// parsePathUUID pulls a UUID path variable, writing the 400 itself on
// failure.
func parsePathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service-layer sentinels onto the HTTP surface.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil, err)
	case errors.Is(err, utils.ErrWrongRole):
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeWrongRole, "Operation not allowed for your role", nil, err)
	case errors.Is(err, utils.ErrIllegalTransition):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeIllegalTransition, "Status transition not allowed", nil, err)
	case errors.Is(err, utils.ErrMessageRequired):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Message must not be empty", nil, err)
	case errors.Is(err, utils.ErrScheduledAtPast):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Scheduled time must not be in the past", nil, err)
	case errors.Is(err, utils.ErrInvalidRole):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid role", nil, err)
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid status", nil, err)
	case errors.Is(err, utils.ErrRowVersionConflict), errors.Is(err, utils.ErrTooMuchContention):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Concurrent update, please retry", nil, err)
	default:
		utils.HandleAppError(w, err)
	}
}
