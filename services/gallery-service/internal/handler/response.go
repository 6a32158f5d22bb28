package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
	"github.com/vasapolrittideah/art-gallery-api/shared/middleware"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

const maxJSONBodySize = 10 << 20

var errMalformedBody = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, payload.Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, payload.Response{Success: false, Message: message})
}

// handleError maps usecase errors to responses. Internal failures are logged and
// reported without detail.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, payload.Response{
			Success: false,
			Message: validationErr.Error(),
			Data:    validationErr.Fields,
		})
		return
	}

	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger(r).Error().Err(err).Msg(message)
	}

	writeError(w, status, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, usecase.ErrCategoryAlreadyExists):
		return http.StatusConflict, "Category with this name already exists"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, usecase.ErrEmailNotVerified):
		return http.StatusUnauthorized, "Please verify your email address before logging in"
	case errors.Is(err, usecase.ErrPendingActivation):
		return http.StatusUnauthorized, "Your account is pending activation by an administrator"
	case errors.Is(err, usecase.ErrInvalidOrExpired):
		return http.StatusBadRequest, "Invalid or expired code"
	case errors.Is(err, usecase.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many attempts, please try again later"
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "Not authorized"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "Not authorized to modify this artwork"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, usecase.ErrArtistNotFound):
		return http.StatusNotFound, "Artist not found"
	case errors.Is(err, usecase.ErrArtworkNotFound):
		return http.StatusNotFound, "Artwork not found"
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found"
	case errors.Is(err, usecase.ErrNotArtist):
		return http.StatusBadRequest, "Can only toggle status of artist accounts"
	case errors.Is(err, usecase.ErrDeliveryFailed):
		return http.StatusInternalServerError, "Email could not be sent"
	default:
		return http.StatusInternalServerError, "something went wrong"
	}
}

func logger(r *http.Request) *zerolog.Logger {
	return hlog.FromRequest(r)
}

// decodeJSON reads a single JSON object and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.Validator, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errMalformedBody
	}

	return v.Struct(dst)
}

func actorFrom(r *http.Request) usecase.Actor {
	identity, _ := middleware.FromContext(r.Context())
	return usecase.Actor{ID: identity.UserID, Role: model.Role(identity.Role)}
}

// pageFrom reads page, limit and all. Unparseable values fall back to the defaults.
func pageFrom(r *http.Request) types.PageRequest {
	q := r.URL.Query()

	page, _ := strconv.ParseUint(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseUint(q.Get("limit"), 10, 64)

	return types.PageRequest{
		Page:  page,
		Limit: limit,
		All:   q.Get("all") == "true",
	}.Normalize()
}
