package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/config"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
	"github.com/vasapolrittideah/art-gallery-api/shared/ratelimit"
	"github.com/vasapolrittideah/art-gallery-api/shared/security"
)

// PasswordResetUsecase defines the business logic for password reset codes.
type PasswordResetUsecase interface {
	// RequestPasswordReset stores a new 6-digit code for the account and emails it.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword replaces the password when the code matches and has not expired.
	ResetPassword(ctx context.Context, params ResetPasswordParams) error
}

// ResetPasswordParams defines the parameters for confirming a password reset.
type ResetPasswordParams struct {
	Email       string
	Code        string
	NewPassword string
}

type passwordResetUsecase struct {
	userRepo       repository.UserRepository
	mailer         mailer.Sender
	requestLimiter ratelimit.Limiter
	confirmLimiter ratelimit.Limiter
	cfg            *config.GalleryServiceConfig
	logger         *zerolog.Logger
	now            func() time.Time
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer mailer.Sender,
	requestLimiter ratelimit.Limiter,
	confirmLimiter ratelimit.Limiter,
	cfg *config.GalleryServiceConfig,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:       userRepo,
		mailer:         mailer,
		requestLimiter: requestLimiter,
		confirmLimiter: confirmLimiter,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if err := u.allow(ctx, u.requestLimiter, "reset-request:"+email); err != nil {
		return err
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := security.GenerateNumericCode()
	if err != nil {
		return err
	}

	expiresIn := u.cfg.Token.ResetCodeExpiresIn
	if err := u.userRepo.SetResetCode(ctx, user.ID.Hex(), code, u.now().Add(expiresIn)); err != nil {
		return err
	}

	if err := u.mailer.Send(resetCodeEmail(u.cfg.AppName, user.Email, code, expiresIn)); err != nil {
		// A code the user never received must not stay valid.
		if clearErr := u.userRepo.ClearResetCode(context.WithoutCancel(ctx), user.ID.Hex()); clearErr != nil {
			u.logger.Error().
				Err(clearErr).
				Str("user_id", user.ID.Hex()).
				Msg("failed to clear reset code after email delivery failure")
		}

		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	email := normalizeEmail(params.Email)
	limiterKey := "reset-confirm:" + email

	if err := u.allow(ctx, u.confirmLimiter, limiterKey); err != nil {
		return err
	}

	if !isResetCode(params.Code) {
		return ErrInvalidOrExpired
	}

	passwordHash, err := security.HashPassword(params.NewPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.ConsumeResetCode(ctx, email, params.Code, passwordHash, u.now()); err != nil {
		if isNotFound(err) {
			return ErrInvalidOrExpired
		}
		return err
	}

	if err := u.confirmLimiter.Reset(ctx, limiterKey); err != nil {
		u.logger.Warn().Err(err).Msg("failed to reset password reset attempts")
	}

	return nil
}

// allow fails open when the limiter backend is unavailable.
func (u *passwordResetUsecase) allow(ctx context.Context, limiter ratelimit.Limiter, key string) error {
	allowed, err := limiter.Allow(ctx, key)
	if err != nil {
		u.logger.Warn().Err(err).Str("key", key).Msg("password reset rate limiter unavailable")
		return nil
	}
	if !allowed {
		return ErrTooManyAttempts
	}
	return nil
}

func isResetCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
