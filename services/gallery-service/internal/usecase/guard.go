package usecase

import (
	"context"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/shared/auth"
)

// Actor is the authenticated account performing an operation.
type Actor struct {
	ID   string
	Role model.Role
}

// IsSuperAdmin reports whether the actor holds the super admin role.
func (a Actor) IsSuperAdmin() bool {
	return a.Role == model.RoleSuperAdmin
}

// Guard resolves session tokens and enforces resource-level access rules.
type Guard interface {
	// Authenticate returns the account a session token belongs to.
	Authenticate(ctx context.Context, token string) (*model.User, error)

	// CanModifyArtwork allows the owning artist and any super admin.
	CanModifyArtwork(actor Actor, artwork *model.Artwork) error
}

type guard struct {
	userRepo repository.UserRepository
	sessions *auth.SessionManager
}

func NewGuard(userRepo repository.UserRepository, sessions *auth.SessionManager) Guard {
	return &guard{
		userRepo: userRepo,
		sessions: sessions,
	}
}

func (g *guard) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	userID, err := g.sessions.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := g.userRepo.GetUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

func (g *guard) CanModifyArtwork(actor Actor, artwork *model.Artwork) error {
	if actor.IsSuperAdmin() {
		return nil
	}
	if actor.ID != "" && artwork != nil && artwork.ArtistID.Hex() == actor.ID {
		return nil
	}
	return ErrForbidden
}
