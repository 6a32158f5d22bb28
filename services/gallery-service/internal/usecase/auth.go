package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/config"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/shared/auth"
	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
	"github.com/vasapolrittideah/art-gallery-api/shared/ratelimit"
	"github.com/vasapolrittideah/art-gallery-api/shared/security"
)

// verificationTokenBytes is the entropy of an email verification token.
const verificationTokenBytes = 20

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates an unverified, inactive artist and emails a verification link.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)

	// VerifyEmail consumes a verification token.
	VerifyEmail(ctx context.Context, token string) error

	// Login admits verified, activated accounts and issues a session token.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Bio      string
}

// LoginResult is a session token and the account it was issued for.
type LoginResult struct {
	Token string
	User  *model.User
}

type authUsecase struct {
	userRepo     repository.UserRepository
	sessions     *auth.SessionManager
	mailer       mailer.Sender
	loginLimiter ratelimit.Limiter
	cfg          *config.GalleryServiceConfig
	logger       *zerolog.Logger
	now          func() time.Time
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	sessions *auth.SessionManager,
	mailer mailer.Sender,
	loginLimiter ratelimit.Limiter,
	cfg *config.GalleryServiceConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		sessions:     sessions,
		mailer:       mailer,
		loginLimiter: loginLimiter,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	email := normalizeEmail(params.Email)

	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(verificationTokenBytes)
	if err != nil {
		return nil, err
	}
	expiresAt := u.now().Add(u.cfg.Token.VerificationExpiresIn)

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Username:                   strings.TrimSpace(params.Username),
		Email:                      email,
		PasswordHash:               passwordHash,
		Role:                       model.RoleArtist,
		IsActive:                   false,
		IsEmailVerified:            false,
		Bio:                        params.Bio,
		EmailVerificationToken:     token,
		EmailVerificationExpiresAt: &expiresAt,
	})
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, err
	}

	verificationURL := fmt.Sprintf("%s/verify-email/%s", strings.TrimRight(u.cfg.FrontendURL, "/"), token)
	msg := verificationEmail(u.cfg.AppName, user.Email, verificationURL, u.cfg.Token.VerificationExpiresIn)

	if err := u.mailer.Send(msg); err != nil {
		if _, delErr := u.userRepo.DeleteUser(context.WithoutCancel(ctx), user.ID.Hex()); delErr != nil {
			u.logger.Error().
				Err(delErr).
				Str("user_id", user.ID.Hex()).
				Msg("failed to roll back registration after email delivery failure")
		}

		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return user, nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidOrExpired
	}

	if _, err := u.userRepo.VerifyEmail(ctx, token, u.now()); err != nil {
		if isNotFound(err) {
			return ErrInvalidOrExpired
		}

		return err
	}

	return nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	email := normalizeEmail(params.Email)
	limiterKey := "login:" + email

	allowed, err := u.loginLimiter.Allow(ctx, limiterKey)
	if err != nil {
		u.logger.Warn().Err(err).Msg("login rate limiter unavailable")
	} else if !allowed {
		return nil, ErrTooManyAttempts
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	if user.Role == model.RoleArtist && !user.IsActive {
		return nil, ErrPendingActivation
	}

	if err := u.loginLimiter.Reset(ctx, limiterKey); err != nil {
		u.logger.Warn().Err(err).Msg("failed to reset login attempts")
	}

	u.upgradePasswordHash(ctx, user, params.Password)

	token, err := u.sessions.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  user,
	}, nil
}

// upgradePasswordHash rehashes legacy bcrypt hashes with argon2id. Failures only cost the upgrade.
func (u *authUsecase) upgradePasswordHash(ctx context.Context, user *model.User, password string) {
	if !security.NeedsRehash(user.PasswordHash) {
		return
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		u.logger.Warn().Err(err).Msg("failed to rehash password")
		return
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to store upgraded password hash")
		return
	}

	user.PasswordHash = passwordHash
}
