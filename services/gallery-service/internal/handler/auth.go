package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

type authHTTPHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	profileUsecase       usecase.ProfileUsecase
	validator            *validator.Validator
}

func newAuthHTTPHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	profileUsecase usecase.ProfileUsecase,
	validator *validator.Validator,
) *authHTTPHandler {
	return &authHTTPHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		profileUsecase:       profileUsecase,
		validator:            validator,
	}
}

func (h *authHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated,
		"Registration successful. Please check your email to verify your account.",
		payload.NewUserResponse(user),
	)
}

func (h *authHTTPHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.VerifyEmail(r.Context(), chi.URLParam(r, "token")); err != nil {
		if errors.Is(err, usecase.ErrInvalidOrExpired) {
			writeError(w, http.StatusBadRequest, "Invalid or expired verification token")
			return
		}
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Email verified successfully", nil)
}

func (h *authHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", payload.LoginResponse{
		Token: result.Token,
		User:  payload.NewUserResponse(result.User),
	})
}

func (h *authHTTPHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.profileUsecase.GetProfile(r.Context(), actorFrom(r).ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", payload.NewUserResponse(user))
}

func (h *authHTTPHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProfileRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := h.profileUsecase.UpdateProfile(r.Context(), actorFrom(r).ID, usecase.UpdateProfileParams{
		Username:    req.Username,
		Bio:         req.Bio,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Profile updated successfully", payload.NewUserResponse(user))
}
