package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

const (
	maxThumbnails      = 1
	maxImages          = 10
	multipartMemory    = 32 << 20
	multipartFormExtra = 1 << 20
)

// uploadError is a client mistake in the multipart form.
type uploadError struct {
	message string
}

func (e *uploadError) Error() string { return e.message }

type artworkHTTPHandler struct {
	artworkUsecase usecase.ArtworkUsecase
	validator      *validator.Validator
	maxUploadSize  int64
}

func newArtworkHTTPHandler(
	artworkUsecase usecase.ArtworkUsecase,
	validator *validator.Validator,
	maxUploadSize int64,
) *artworkHTTPHandler {
	return &artworkHTTPHandler{
		artworkUsecase: artworkUsecase,
		validator:      validator,
		maxUploadSize:  maxUploadSize,
	}
}

func (h *artworkHTTPHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := usecase.ListArtworksParams{
		Search:     q.Get("search"),
		CategoryID: q.Get("category"),
		Page:       pageFrom(r),
	}
	if sold := q.Get("sold"); sold != "" {
		v := sold == "true"
		params.Sold = &v
	}
	if status := q.Get("status"); status != "" {
		s := model.ArtworkStatus(status)
		params.Status = &s
	}

	list, err := h.artworkUsecase.ListArtworks(r.Context(), params)
	if err != nil {
		handleError(w, r, err)
		return
	}

	artworks := make([]payload.ArtworkResponse, 0, len(list.Artworks))
	for _, item := range list.Artworks {
		artworks = append(artworks, payload.NewArtworkResponse(item.Artwork, item.Artist))
	}

	writeSuccess(w, http.StatusOK, "", payload.ArtworkListResponse{
		Artworks:   artworks,
		Pagination: list.Pagination,
	})
}

func (h *artworkHTTPHandler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	result, err := h.artworkUsecase.GetArtwork(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", payload.NewArtworkResponse(result.Artwork, result.Artist))
}

func (h *artworkHTTPHandler) ListArtworksByArtist(w http.ResponseWriter, r *http.Request) {
	result, err := h.artworkUsecase.ListArtworksByArtist(r.Context(), chi.URLParam(r, "artistId"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	artworks := make([]payload.ArtworkResponse, 0, len(result.Artworks))
	for _, artwork := range result.Artworks {
		artworks = append(artworks, payload.NewArtworkResponse(artwork, nil))
	}

	writeSuccess(w, http.StatusOK, "", payload.ArtistArtworksResponse{
		Artist:   payload.NewArtistResponse(result.Artist),
		Artworks: artworks,
	})
}

func (h *artworkHTTPHandler) CreateArtwork(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize*(maxThumbnails+maxImages)+multipartFormExtra)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req, err := createArtworkRequestFrom(r.MultipartForm)
	if err != nil {
		handleUploadError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		handleError(w, r, err)
		return
	}

	thumbnails, err := h.openUploads(r.MultipartForm, "thumbnail", maxThumbnails)
	if err != nil {
		handleUploadError(w, r, err)
		return
	}
	defer closeUploads(thumbnails)

	images, err := h.openUploads(r.MultipartForm, "images", maxImages)
	if err != nil {
		handleUploadError(w, r, err)
		return
	}
	defer closeUploads(images)

	params := usecase.CreateArtworkParams{
		Title:           req.Title,
		Description:     req.Description,
		Size:            req.Size,
		Media:           req.Media,
		PrintNumber:     req.PrintNumber,
		InventoryNumber: req.InventoryNumber,
		Status:          model.ArtworkStatus(req.Status),
		Price:           req.Price,
		Location:        req.Location,
		Notes:           req.Notes,
		Sold:            req.Sold,
		CategoryID:      req.CategoryID,
		Tags:            req.Tags,
		Images:          images,
	}
	if len(thumbnails) > 0 {
		params.Thumbnail = &thumbnails[0]
	}

	artwork, err := h.artworkUsecase.CreateArtwork(r.Context(), actorFrom(r), params)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Artwork created successfully", payload.NewArtworkResponse(artwork, nil))
}

func (h *artworkHTTPHandler) UpdateArtwork(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateArtworkRequest
	if err := decodeJSON(w, r, h.validator, &req); err != nil {
		handleError(w, r, err)
		return
	}

	params := repository.UpdateArtworkParams{
		Title:           req.Title,
		Description:     req.Description,
		Size:            req.Size,
		Media:           req.Media,
		PrintNumber:     req.PrintNumber,
		InventoryNumber: req.InventoryNumber,
		Price:           req.Price,
		Location:        req.Location,
		Notes:           req.Notes,
		Sold:            req.Sold,
		CategoryID:      req.CategoryID,
		Tags:            req.Tags,
	}
	if req.Status != nil {
		status := model.ArtworkStatus(*req.Status)
		params.Status = &status
	}

	artwork, err := h.artworkUsecase.UpdateArtwork(r.Context(), actorFrom(r), chi.URLParam(r, "id"), params)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Artwork updated successfully", payload.NewArtworkResponse(artwork, nil))
}

func (h *artworkHTTPHandler) DeleteArtwork(w http.ResponseWriter, r *http.Request) {
	if err := h.artworkUsecase.DeleteArtwork(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Artwork deleted successfully", nil)
}

func (h *artworkHTTPHandler) openUploads(form *multipart.Form, field string, limit int) ([]usecase.Upload, error) {
	headers := form.File[field]
	if len(headers) > limit {
		return nil, &uploadError{message: fmt.Sprintf("Too many files for %s, at most %d allowed", field, limit)}
	}

	uploads := make([]usecase.Upload, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > h.maxUploadSize {
			closeUploads(uploads)
			return nil, &uploadError{message: fmt.Sprintf("File %s exceeds the %d byte limit", fh.Filename, h.maxUploadSize)}
		}

		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			closeUploads(uploads)
			return nil, &uploadError{message: "Only image files are allowed"}
		}

		f, err := fh.Open()
		if err != nil {
			closeUploads(uploads)
			return nil, err
		}

		uploads = append(uploads, usecase.Upload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Body:        f,
		})
	}

	return uploads, nil
}

func closeUploads(uploads []usecase.Upload) {
	for _, u := range uploads {
		if c, ok := u.Body.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

func handleUploadError(w http.ResponseWriter, r *http.Request, err error) {
	var uploadErr *uploadError
	if errors.As(err, &uploadErr) {
		writeError(w, http.StatusBadRequest, uploadErr.message)
		return
	}
	handleError(w, r, err)
}

func createArtworkRequestFrom(form *multipart.Form) (*payload.CreateArtworkRequest, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := &payload.CreateArtworkRequest{
		Title:           value("title"),
		Description:     value("description"),
		Size:            value("size"),
		Media:           value("media"),
		PrintNumber:     value("print_number"),
		InventoryNumber: value("inventory_number"),
		Status:          value("status"),
		Location:        value("location"),
		Notes:           value("notes"),
		CategoryID:      value("category_id"),
	}

	if raw := value("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &uploadError{message: "price must be a number"}
		}
		req.Price = &price
	}

	if raw := value("sold"); raw != "" {
		sold, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &uploadError{message: "sold must be true or false"}
		}
		req.Sold = sold
	}

	for _, raw := range form.Value["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	return req, nil
}
