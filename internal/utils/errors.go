package utils

import (
	"errors"
	"net/http"
)

/*
   Sentinel errors for StudentNest domain logic.
   Controllers can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrNotFound          = errors.New("not_found")
	ErrWrongRole         = errors.New("wrong_role")
	ErrIllegalTransition = errors.New("illegal_status_transition")
	ErrMessageRequired   = errors.New("message_required")
	ErrScheduledAtPast   = errors.New("scheduled_at_past")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrInvalidStatus     = errors.New("invalid_status")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrTooMuchContention  = errors.New("too_much_contention")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
