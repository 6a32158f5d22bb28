package usecase

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
)

var (
	ErrEmailAlreadyExists    = errors.New("user already exists")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("please verify your email address before logging in")
	ErrPendingActivation  = errors.New("your account is pending activation by an administrator")
	ErrInvalidOrExpired   = errors.New("invalid or expired code")
	ErrTooManyAttempts    = errors.New("too many attempts, please try again later")

	ErrUnauthorized = errors.New("not authorized")
	ErrForbidden    = errors.New("forbidden")

	ErrUserNotFound     = errors.New("user not found")
	ErrArtistNotFound   = errors.New("artist not found")
	ErrArtworkNotFound  = errors.New("artwork not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotArtist        = errors.New("can only toggle status of artist accounts")

	ErrDeliveryFailed = errors.New("email could not be sent")
)

// isNotFound reports whether err means the document does not exist.
// Malformed ids can never match, so they are treated the same way.
func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrInvalidID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
