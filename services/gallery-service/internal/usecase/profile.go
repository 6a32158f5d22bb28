package usecase

import (
	"context"
	"strings"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
)

// ProfileUsecase manages the authenticated user's own profile.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)
}

// UpdateProfileParams lists the self-service fields. Nil fields are left unchanged.
type UpdateProfileParams struct {
	Username    *string
	Bio         *string
	ContactInfo *model.ContactInfo
}

type profileUsecase struct {
	userRepo repository.UserRepository
}

func NewProfileUsecase(userRepo repository.UserRepository) ProfileUsecase {
	return &profileUsecase{userRepo: userRepo}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *profileUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	if params.Username == nil && params.Bio == nil && params.ContactInfo == nil {
		return u.GetProfile(ctx, userID)
	}

	if params.Username != nil {
		username := strings.TrimSpace(*params.Username)
		params.Username = &username
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		Username:    params.Username,
		Bio:         params.Bio,
		ContactInfo: params.ContactInfo,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
