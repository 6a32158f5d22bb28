package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
)

const resetCodeSentMessage = "Reset code sent to your email"

// ForgotPassword answers the same way whether or not the email has an account.
func (h *authHTTPHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email)
	switch {
	case err == nil, errors.Is(err, usecase.ErrUserNotFound):
		writeSuccess(w, http.StatusOK, resetCodeSentMessage, nil)
	default:
		handleError(w, r, err)
	}
}

func (h *authHTTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), usecase.ResetPasswordParams{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidOrExpired) {
			writeError(w, http.StatusBadRequest, "Invalid or expired reset code")
			return
		}
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Password reset successfully", nil)
}
