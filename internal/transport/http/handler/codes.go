package handler

import (
	"net/http"

	"github.com/eventpill-api/internal/application/notification"
	"github.com/eventpill-api/internal/application/verification"
	"github.com/eventpill-api/internal/domain"
)

// CodeHandler handles resending and redeeming verification codes.
type CodeHandler struct {
	notifier notification.Service
	verifier verification.Service
}

func NewCodeHandler(notifier notification.Service, verifier verification.Service) *CodeHandler {
	return &CodeHandler{notifier: notifier, verifier: verifier}
}

// SendEmail handles POST /api/sendemail.
func (h *CodeHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.SendCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.notifier.SendCode(r.Context(), req); err != nil {
		writeServiceError(w, err, msgSendFailed)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "Verification code sent successfully"})
}

// VerifyCode handles POST /api/verifycode.
func (h *CodeHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.verifier.VerifyCode(r.Context(), req.AuthCode); err != nil {
		writeServiceError(w, err, msgVerifyFailed)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "Code verified successfully"})
}
