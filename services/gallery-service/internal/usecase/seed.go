package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/shared/security"
)

const (
	superAdminUsername = "Super Admin"
	superAdminBio      = "System Administrator"
)

// SeedUsecase bootstraps required accounts at startup.
type SeedUsecase interface {
	// SeedSuperAdmin creates the super admin unless an account with the email exists.
	// It reports whether an account was created. Concurrent callers create at most one.
	SeedSuperAdmin(ctx context.Context, email, password string) (bool, error)
}

type seedUsecase struct {
	userRepo repository.UserRepository
}

func NewSeedUsecase(userRepo repository.UserRepository) SeedUsecase {
	return &seedUsecase{userRepo: userRepo}
}

func (u *seedUsecase) SeedSuperAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)

	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return false, err
	}

	if _, err := u.userRepo.CreateUser(ctx, &model.User{
		Username:        superAdminUsername,
		Email:           email,
		PasswordHash:    passwordHash,
		Role:            model.RoleSuperAdmin,
		IsActive:        true,
		IsEmailVerified: true,
		Bio:             superAdminBio,
	}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
