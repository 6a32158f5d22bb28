package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
	"github.com/vasapolrittideah/art-gallery-api/shared/storage"
)

// AdminUsecase holds the super admin's account management operations.
type AdminUsecase interface {
	ListUsers(ctx context.Context, page types.PageRequest) (*UserList, error)

	// DeleteUser removes the account together with its artworks and their files.
	DeleteUser(ctx context.Context, id string) error

	// ToggleUserStatus activates or deactivates an artist account.
	ToggleUserStatus(ctx context.Context, id string) (*model.User, error)
}

// UserList is a page of accounts.
type UserList struct {
	Users      []*model.User
	Pagination *types.Pagination
}

type adminUsecase struct {
	userRepo    repository.UserRepository
	artworkRepo repository.ArtworkRepository
	storage     storage.Storage
	logger      *zerolog.Logger
}

func NewAdminUsecase(
	userRepo repository.UserRepository,
	artworkRepo repository.ArtworkRepository,
	storage storage.Storage,
	logger *zerolog.Logger,
) AdminUsecase {
	return &adminUsecase{
		userRepo:    userRepo,
		artworkRepo: artworkRepo,
		storage:     storage,
		logger:      logger,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context, page types.PageRequest) (*UserList, error) {
	page = page.Normalize()

	users, err := u.userRepo.ListUsers(ctx, repository.FilterUsersParams{
		Limit:    page.QueryLimit(),
		Offset:   page.Offset(),
		SortDesc: true,
	})
	if err != nil {
		return nil, err
	}

	total, err := u.userRepo.CountUsers(ctx, repository.FilterUsersParams{})
	if err != nil {
		return nil, err
	}

	return &UserList{
		Users:      users,
		Pagination: types.NewPagination(total, page),
	}, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, id string) error {
	if _, err := u.userRepo.GetUser(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	artworks, err := u.artworkRepo.DeleteArtworksByArtist(ctx, id)
	if err != nil {
		return err
	}
	for _, artwork := range artworks {
		removeFiles(ctx, u.storage, u.logger, artwork.Files())
	}

	if _, err := u.userRepo.DeleteUser(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

func (u *adminUsecase) ToggleUserStatus(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != model.RoleArtist {
		return nil, ErrNotArtist
	}

	updated, err := u.userRepo.ToggleActive(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return updated, nil
}

// removeFiles deletes stored files, logging the ones that could not be removed.
func removeFiles(ctx context.Context, s storage.Storage, logger *zerolog.Logger, files []string) {
	for _, name := range files {
		if err := s.Delete(ctx, name); err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("failed to delete artwork file")
		}
	}
}
