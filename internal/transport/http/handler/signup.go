package handler

import (
	"net/http"

	"github.com/eventpill-api/internal/application/signup"
	"github.com/eventpill-api/internal/domain"
)

// SignupHandler handles POST /api/signup.
type SignupHandler struct {
	svc signup.Service
}

func NewSignupHandler(svc signup.Service) *SignupHandler { return &SignupHandler{svc: svc} }

func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	acct, err := h.svc.Signup(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err, msgSignupFailed)
		return
	}
	writeJSON(w, http.StatusCreated, SignupEnvelope{
		Message: "Sign-up successful. Authentication code sent to email.",
		User:    SignupUser{Email: acct.Email},
	})
}
