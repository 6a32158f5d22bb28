package handler

import (
	"net/http"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

type contactHTTPHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.Validator
}

func newContactHTTPHandler(contactUsecase usecase.ContactUsecase, validator *validator.Validator) *contactHTTPHandler {
	return &contactHTTPHandler{
		contactUsecase: contactUsecase,
		validator:      validator,
	}
}

func (h *contactHTTPHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := h.contactUsecase.SendContactMessage(r.Context(), usecase.ContactParams{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ArtworkID: req.ArtworkID,
	}); err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Message sent successfully", nil)
}
