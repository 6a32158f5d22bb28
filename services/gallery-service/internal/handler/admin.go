package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
)

type adminHTTPHandler struct {
	adminUsecase   usecase.AdminUsecase
	artworkUsecase usecase.ArtworkUsecase
}

func newAdminHTTPHandler(adminUsecase usecase.AdminUsecase, artworkUsecase usecase.ArtworkUsecase) *adminHTTPHandler {
	return &adminHTTPHandler{
		adminUsecase:   adminUsecase,
		artworkUsecase: artworkUsecase,
	}
}

func (h *adminHTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.adminUsecase.ListUsers(r.Context(), pageFrom(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", payload.NewUserListResponse(list.Users, list.Pagination))
}

func (h *adminHTTPHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.adminUsecase.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *adminHTTPHandler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminUsecase.ToggleUserStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}

	writeSuccess(w, http.StatusOK,
		fmt.Sprintf("User %s successfully", state),
		payload.NewUserStatusResponse(user),
	)
}

func (h *adminHTTPHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	list, err := h.artworkUsecase.ListArtworks(r.Context(), usecase.ListArtworksParams{Page: pageFrom(r)})
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

func (h *adminHTTPHandler) DeleteArtwork(w http.ResponseWriter, r *http.Request) {
	if err := h.artworkUsecase.DeleteArtwork(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Artwork deleted successfully", nil)
}
