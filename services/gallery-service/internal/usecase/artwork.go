package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
	"github.com/vasapolrittideah/art-gallery-api/shared/storage"
)

const (
	thumbnailField = "thumbnail"
	imagesField    = "images"
)

// ArtworkUsecase defines the artwork listing operations.
type ArtworkUsecase interface {
	CreateArtwork(ctx context.Context, actor Actor, params CreateArtworkParams) (*model.Artwork, error)
	GetArtwork(ctx context.Context, id string) (*ArtworkWithArtist, error)
	ListArtworks(ctx context.Context, params ListArtworksParams) (*ArtworkList, error)
	ListArtworksByArtist(ctx context.Context, artistID string) (*ArtistArtworks, error)
	UpdateArtwork(
		ctx context.Context,
		actor Actor,
		id string,
		params repository.UpdateArtworkParams,
	) (*model.Artwork, error)

	// DeleteArtwork removes the artwork and its stored files.
	DeleteArtwork(ctx context.Context, actor Actor, id string) error
}

// Upload is an uploaded image file.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateArtworkParams defines the parameters for creating an artwork.
type CreateArtworkParams struct {
	Title           string
	Description     string
	Size            string
	Media           string
	PrintNumber     string
	InventoryNumber string
	Status          model.ArtworkStatus
	Price           *float64
	Location        string
	Notes           string
	Sold            bool
	CategoryID      string
	Tags            []string
	Thumbnail       *Upload
	Images          []Upload
}

// ListArtworksParams defines the filters and page of an artwork listing.
type ListArtworksParams struct {
	Search     string
	CategoryID string
	Sold       *bool
	Status     *model.ArtworkStatus
	Page       types.PageRequest
}

// ArtworkWithArtist is an artwork and its owner. Artist is nil when the owner no longer exists.
type ArtworkWithArtist struct {
	Artwork *model.Artwork
	Artist  *model.User
}

// ArtworkList is a page of artworks.
type ArtworkList struct {
	Artworks   []ArtworkWithArtist
	Pagination *types.Pagination
}

// ArtistArtworks is an artist and all of their artworks.
type ArtistArtworks struct {
	Artist   *model.User
	Artworks []*model.Artwork
}

type artworkUsecase struct {
	artworkRepo repository.ArtworkRepository
	userRepo    repository.UserRepository
	storage     storage.Storage
	guard       Guard
	logger      *zerolog.Logger
}

func NewArtworkUsecase(
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
	guard Guard,
	logger *zerolog.Logger,
) ArtworkUsecase {
	return &artworkUsecase{
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
		storage:     storage,
		guard:       guard,
		logger:      logger,
	}
}

func (u *artworkUsecase) CreateArtwork(
	ctx context.Context,
	actor Actor,
	params CreateArtworkParams,
) (*model.Artwork, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}

	artistID, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var saved []string

	thumbnail := ""
	if params.Thumbnail != nil {
		name, err := u.save(ctx, thumbnailField, *params.Thumbnail)
		if err != nil {
			return nil, err
		}
		thumbnail = name
		saved = append(saved, name)
	}

	images := make([]string, 0, len(params.Images))
	for _, img := range params.Images {
		name, err := u.save(ctx, imagesField, img)
		if err != nil {
			removeFiles(ctx, u.storage, u.logger, saved)
			return nil, err
		}
		images = append(images, name)
		saved = append(saved, name)
	}

	status := params.Status
	if status == "" {
		status = model.ArtworkStatusAvailable
	}

	artwork, err := u.artworkRepo.CreateArtwork(ctx, &model.Artwork{
		Title:           strings.TrimSpace(params.Title),
		Description:     params.Description,
		Thumbnail:       thumbnail,
		Images:          images,
		Size:            params.Size,
		Media:           params.Media,
		PrintNumber:     params.PrintNumber,
		InventoryNumber: params.InventoryNumber,
		Status:          status,
		Price:           params.Price,
		Location:        params.Location,
		Notes:           params.Notes,
		Sold:            params.Sold,
		ArtistID:        artistID,
		CategoryID:      params.CategoryID,
		Tags:            params.Tags,
	})
	if err != nil {
		removeFiles(context.WithoutCancel(ctx), u.storage, u.logger, saved)
		return nil, err
	}

	return artwork, nil
}

func (u *artworkUsecase) GetArtwork(ctx context.Context, id string) (*ArtworkWithArtist, error) {
	artwork, err := u.getArtwork(ctx, id)
	if err != nil {
		return nil, err
	}

	artist, err := u.lookupArtist(ctx, artwork.ArtistID.Hex())
	if err != nil {
		return nil, err
	}

	return &ArtworkWithArtist{Artwork: artwork, Artist: artist}, nil
}

func (u *artworkUsecase) ListArtworks(ctx context.Context, params ListArtworksParams) (*ArtworkList, error) {
	page := params.Page.Normalize()

	filter := repository.FilterArtworksParams{
		Sold:     params.Sold,
		Status:   params.Status,
		SortDesc: true,
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		filter.Search = &search
	}
	if params.CategoryID != "" {
		filter.CategoryID = &params.CategoryID
	}

	total, err := u.artworkRepo.CountArtworks(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = page.QueryLimit()
	filter.Offset = page.Offset()

	artworks, err := u.artworkRepo.ListArtworks(ctx, filter)
	if err != nil {
		return nil, err
	}

	artists := make(map[string]*model.User)
	items := make([]ArtworkWithArtist, 0, len(artworks))
	for _, artwork := range artworks {
		artistID := artwork.ArtistID.Hex()

		artist, ok := artists[artistID]
		if !ok {
			artist, err = u.lookupArtist(ctx, artistID)
			if err != nil {
				return nil, err
			}
			artists[artistID] = artist
		}

		items = append(items, ArtworkWithArtist{Artwork: artwork, Artist: artist})
	}

	return &ArtworkList{
		Artworks:   items,
		Pagination: types.NewPagination(total, page),
	}, nil
}

func (u *artworkUsecase) ListArtworksByArtist(ctx context.Context, artistID string) (*ArtistArtworks, error) {
	artist, err := u.userRepo.GetUser(ctx, artistID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}

	artworks, err := u.artworkRepo.ListArtworks(ctx, repository.FilterArtworksParams{
		ArtistID: &artistID,
		SortDesc: true,
	})
	if err != nil {
		return nil, err
	}

	return &ArtistArtworks{Artist: artist, Artworks: artworks}, nil
}

func (u *artworkUsecase) UpdateArtwork(
	ctx context.Context,
	actor Actor,
	id string,
	params repository.UpdateArtworkParams,
) (*model.Artwork, error) {
	artwork, err := u.getArtwork(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.guard.CanModifyArtwork(actor, artwork); err != nil {
		return nil, err
	}

	if params == (repository.UpdateArtworkParams{}) {
		return artwork, nil
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		params.Title = &title
	}

	updated, err := u.artworkRepo.UpdateArtwork(ctx, id, params)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (u *artworkUsecase) DeleteArtwork(ctx context.Context, actor Actor, id string) error {
	artwork, err := u.getArtwork(ctx, id)
	if err != nil {
		return err
	}

	if err := u.guard.CanModifyArtwork(actor, artwork); err != nil {
		return err
	}

	deleted, err := u.artworkRepo.DeleteArtwork(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrArtworkNotFound
		}
		return err
	}

	removeFiles(ctx, u.storage, u.logger, deleted.Files())

	return nil
}

func (u *artworkUsecase) getArtwork(ctx context.Context, id string) (*model.Artwork, error) {
	artwork, err := u.artworkRepo.GetArtwork(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}

	return artwork, nil
}

// lookupArtist returns nil without error when the owner account is gone.
func (u *artworkUsecase) lookupArtist(ctx context.Context, id string) (*model.User, error) {
	artist, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return artist, nil
}

func (u *artworkUsecase) save(ctx context.Context, field string, upload Upload) (string, error) {
	name := storage.GenerateName(field, upload.Filename)
	if err := u.storage.Save(ctx, name, upload.Body, upload.ContentType); err != nil {
		return "", fmt.Errorf("save %s: %w", field, err)
	}
	return name, nil
}
