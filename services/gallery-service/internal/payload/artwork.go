package payload

import (
	"time"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
)

// CreateArtworkRequest holds the text fields of the multipart create form.
type CreateArtworkRequest struct {
	Title           string   `form:"title"            validate:"required,notblank,max=100"`
	Description     string   `form:"description"      validate:"max=2000"`
	Size            string   `form:"size"             validate:"max=100"`
	Media           string   `form:"media"            validate:"max=100"`
	PrintNumber     string   `form:"print_number"     validate:"max=50"`
	InventoryNumber string   `form:"inventory_number" validate:"max=50"`
	Status          string   `form:"status"           validate:"omitempty,oneof=available on_hold on_exhibit sold"`
	Price           *float64 `form:"price"            validate:"omitempty,gte=0"`
	Location        string   `form:"location"         validate:"max=200"`
	Notes           string   `form:"notes"            validate:"max=2000"`
	Sold            bool     `form:"sold"`
	CategoryID      string   `form:"category_id"`
	Tags            []string `form:"tags"             validate:"max=20,dive,max=50"`
}

type UpdateArtworkRequest struct {
	Title           *string   `json:"title"            validate:"omitempty,notblank,max=100"`
	Description     *string   `json:"description"      validate:"omitempty,max=2000"`
	Size            *string   `json:"size"             validate:"omitempty,max=100"`
	Media           *string   `json:"media"            validate:"omitempty,max=100"`
	PrintNumber     *string   `json:"print_number"     validate:"omitempty,max=50"`
	InventoryNumber *string   `json:"inventory_number" validate:"omitempty,max=50"`
	Status          *string   `json:"status"           validate:"omitempty,oneof=available on_hold on_exhibit sold"`
	Price           *float64  `json:"price"            validate:"omitempty,gte=0"`
	Location        *string   `json:"location"         validate:"omitempty,max=200"`
	Notes           *string   `json:"notes"            validate:"omitempty,max=2000"`
	Sold            *bool     `json:"sold"`
	CategoryID      *string   `json:"category_id"`
	Tags            *[]string `json:"tags"             validate:"omitempty,max=20,dive,max=50"`
}

type ArtworkResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Thumbnail       string              `json:"thumbnail,omitempty"`
	Images          []string            `json:"images"`
	Size            string              `json:"size,omitempty"`
	Media           string              `json:"media,omitempty"`
	PrintNumber     string              `json:"print_number,omitempty"`
	InventoryNumber string              `json:"inventory_number,omitempty"`
	Status          model.ArtworkStatus `json:"status"`
	Price           *float64            `json:"price,omitempty"`
	Location        string              `json:"location,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Sold            bool                `json:"sold"`
	ArtistID        string              `json:"artist_id"`
	CategoryID      string              `json:"category_id,omitempty"`
	Tags            []string            `json:"tags,omitempty"`
	Artist          *ArtistResponse     `json:"artist,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewArtworkResponse(a *model.Artwork, artist *model.User) ArtworkResponse {
	images := a.Images
	if images == nil {
		images = []string{}
	}

	return ArtworkResponse{
		ID:              a.ID.Hex(),
		Title:           a.Title,
		Description:     a.Description,
		Thumbnail:       a.Thumbnail,
		Images:          images,
		Size:            a.Size,
		Media:           a.Media,
		PrintNumber:     a.PrintNumber,
		InventoryNumber: a.InventoryNumber,
		Status:          a.Status,
		Price:           a.Price,
		Location:        a.Location,
		Notes:           a.Notes,
		Sold:            a.Sold,
		ArtistID:        a.ArtistID.Hex(),
		CategoryID:      a.CategoryID,
		Tags:            a.Tags,
		Artist:          NewArtistResponse(artist),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

type ArtworkListResponse struct {
	Artworks   []ArtworkResponse `json:"artworks"`
	Pagination *types.Pagination `json:"pagination"`
}

type ArtistArtworksResponse struct {
	Artist   *ArtistResponse   `json:"artist"`
	Artworks []ArtworkResponse `json:"artworks"`
}
