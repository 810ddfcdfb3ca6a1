package handler

import (
	"errors"
	"net/http"

	"github.com/eventpill-api/internal/domain"
)

const (
	msgDuplicateEmail = "An account with this email already exists"
	msgInvalidCode    = "Invalid code"
	msgNotifyFailed   = "Failed to send authentication code. Please try again later."

	msgSignupFailed = "An error occurred during sign-up. Please try again later."
	msgSendFailed   = "An error occurred while sending the verification code. Please try again later."
	msgVerifyFailed = "An error occurred while verifying the code. Please try again later."
)

// writeServiceError maps a service error to a status and client-safe message.
// generic is the 500 message for faults the client cannot act on.
func writeServiceError(w http.ResponseWriter, err error, generic string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, msgDuplicateEmail)
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, msgInvalidCode)
	case errors.Is(err, domain.ErrNotification):
		writeError(w, http.StatusInternalServerError, msgNotifyFailed)
	default:
		writeError(w, http.StatusInternalServerError, generic)
	}
}
