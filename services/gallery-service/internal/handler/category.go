package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

type categoryHTTPHandler struct {
	categoryUsecase usecase.CategoryUsecase
	validator       *validator.Validator
}

func newCategoryHTTPHandler(categoryUsecase usecase.CategoryUsecase, validator *validator.Validator) *categoryHTTPHandler {
	return &categoryHTTPHandler{
		categoryUsecase: categoryUsecase,
		validator:       validator,
	}
}

func (h *categoryHTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.categoryUsecase.ListCategories(r.Context(), pageFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", payload.NewCategoryListResponse(list.Categories, list.Pagination))
}

func (h *categoryHTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateCategoryRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	category, err := h.categoryUsecase.CreateCategory(r.Context(), usecase.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Category created successfully", payload.NewCategoryResponse(category))
}

func (h *categoryHTTPHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateCategoryRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	category, err := h.categoryUsecase.UpdateCategory(r.Context(), chi.URLParam(r, "id"), repository.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Category updated successfully", payload.NewCategoryResponse(category))
}

func (h *categoryHTTPHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryUsecase.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Category deleted successfully", nil)
}
