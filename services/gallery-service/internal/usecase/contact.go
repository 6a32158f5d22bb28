package usecase

import (
	"context"
	"fmt"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/config"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
)

// ContactUsecase relays buyer inquiries to artists.
type ContactUsecase interface {
	// SendContactMessage emails the inquiry to the artwork's artist and a confirmation to the sender.
	SendContactMessage(ctx context.Context, params ContactParams) error
}

// ContactParams is an inquiry about an artwork.
type ContactParams struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	ArtworkID string
}

type contactUsecase struct {
	artworkRepo repository.ArtworkRepository
	userRepo    repository.UserRepository
	mailer      mailer.Sender
	cfg         *config.GalleryServiceConfig
}

func NewContactUsecase(
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
	mailer mailer.Sender,
	cfg *config.GalleryServiceConfig,
) ContactUsecase {
	return &contactUsecase{
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (u *contactUsecase) SendContactMessage(ctx context.Context, params ContactParams) error {
	if params.ArtworkID == "" {
		return ErrArtistNotFound
	}

	artwork, err := u.artworkRepo.GetArtwork(ctx, params.ArtworkID)
	if err != nil {
		if isNotFound(err) {
			return ErrArtistNotFound
		}
		return err
	}

	artist, err := u.userRepo.GetUser(ctx, artwork.ArtistID.Hex())
	if err != nil {
		if isNotFound(err) {
			return ErrArtistNotFound
		}
		return err
	}

	params.Email = normalizeEmail(params.Email)
	emails := inquiryEmails(u.cfg.AppName, artist.Username, artist.Email, artwork.Title, params)

	if err := u.mailer.SendBulk(emails); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}
