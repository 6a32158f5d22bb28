package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
)

type mockAuthUsecase struct{ mock.Mock }

func (m *mockAuthUsecase) Register(ctx context.Context, params usecase.RegisterParams) (*model.User, error) {
	args := m.Called(ctx, params)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockAuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthUsecase) Login(ctx context.Context, params usecase.LoginParams) (*usecase.LoginResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*usecase.LoginResult)
	return result, args.Error(1)
}

type mockPasswordResetUsecase struct{ mock.Mock }

func (m *mockPasswordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockPasswordResetUsecase) ResetPassword(ctx context.Context, params usecase.ResetPasswordParams) error {
	return m.Called(ctx, params).Error(0)
}

type mockProfileUsecase struct{ mock.Mock }

func (m *mockProfileUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockProfileUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params usecase.UpdateProfileParams,
) (*model.User, error) {
	args := m.Called(ctx, userID, params)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type mockAdminUsecase struct{ mock.Mock }

func (m *mockAdminUsecase) ListUsers(ctx context.Context, page types.PageRequest) (*usecase.UserList, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).(*usecase.UserList)
	return list, args.Error(1)
}

func (m *mockAdminUsecase) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAdminUsecase) ToggleUserStatus(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type mockArtworkUsecase struct{ mock.Mock }

func (m *mockArtworkUsecase) CreateArtwork(
	ctx context.Context,
	actor usecase.Actor,
	params usecase.CreateArtworkParams,
) (*model.Artwork, error) {
	args := m.Called(ctx, actor, params)
	artwork, _ := args.Get(0).(*model.Artwork)
	return artwork, args.Error(1)
}

func (m *mockArtworkUsecase) GetArtwork(ctx context.Context, id string) (*usecase.ArtworkWithArtist, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*usecase.ArtworkWithArtist)
	return result, args.Error(1)
}

func (m *mockArtworkUsecase) ListArtworks(
	ctx context.Context,
	params usecase.ListArtworksParams,
) (*usecase.ArtworkList, error) {
	args := m.Called(ctx, params)
	list, _ := args.Get(0).(*usecase.ArtworkList)
	return list, args.Error(1)
}

func (m *mockArtworkUsecase) ListArtworksByArtist(
	ctx context.Context,
	artistID string,
) (*usecase.ArtistArtworks, error) {
	args := m.Called(ctx, artistID)
	result, _ := args.Get(0).(*usecase.ArtistArtworks)
	return result, args.Error(1)
}

func (m *mockArtworkUsecase) UpdateArtwork(
	ctx context.Context,
	actor usecase.Actor,
	id string,
	params repository.UpdateArtworkParams,
) (*model.Artwork, error) {
	args := m.Called(ctx, actor, id, params)
	artwork, _ := args.Get(0).(*model.Artwork)
	return artwork, args.Error(1)
}

func (m *mockArtworkUsecase) DeleteArtwork(ctx context.Context, actor usecase.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockCategoryUsecase struct{ mock.Mock }

func (m *mockCategoryUsecase) CreateCategory(
	ctx context.Context,
	params usecase.CreateCategoryParams,
) (*model.Category, error) {
	args := m.Called(ctx, params)
	category, _ := args.Get(0).(*model.Category)
	return category, args.Error(1)
}

func (m *mockCategoryUsecase) UpdateCategory(
	ctx context.Context,
	id string,
	params repository.UpdateCategoryParams,
) (*model.Category, error) {
	args := m.Called(ctx, id, params)
	category, _ := args.Get(0).(*model.Category)
	return category, args.Error(1)
}

func (m *mockCategoryUsecase) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryUsecase) ListCategories(ctx context.Context, page types.PageRequest) (*usecase.CategoryList, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).(*usecase.CategoryList)
	return list, args.Error(1)
}

type mockContactUsecase struct{ mock.Mock }

func (m *mockContactUsecase) SendContactMessage(ctx context.Context, params usecase.ContactParams) error {
	return m.Called(ctx, params).Error(0)
}

type mockGuard struct{ mock.Mock }

func (m *mockGuard) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockGuard) CanModifyArtwork(actor usecase.Actor, artwork *model.Artwork) error {
	return m.Called(actor, artwork).Error(0)
}
