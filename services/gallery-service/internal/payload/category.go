package payload

import (
	"time"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=50"`
	Description string `json:"description" validate:"max=200"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,notblank,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCategoryResponse(c *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Pagination *types.Pagination  `json:"pagination"`
}

func NewCategoryListResponse(categories []*model.Category, pagination *types.Pagination) CategoryListResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return CategoryListResponse{Categories: out, Pagination: pagination}
}
