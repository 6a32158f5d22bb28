package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/config"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/shared/auth"
	"github.com/vasapolrittideah/art-gallery-api/shared/ratelimit"
	"github.com/vasapolrittideah/art-gallery-api/shared/security"
)

var (
	verificationLinkPattern = regexp.MustCompile(`/verify-email/([0-9a-f]+)`)
	resetCodePattern        = regexp.MustCompile(`reset code is: (\d{6})`)
)

// testApp wires every usecase against in-memory dependencies.
type testApp struct {
	clock      *fakeClock
	users      *fakeUserRepo
	artworks   *fakeArtworkRepo
	categories *fakeCategoryRepo
	mailer     *fakeMailer
	storage    *fakeStorage
	sessions   *auth.SessionManager
	cfg        *config.GalleryServiceConfig

	auth     AuthUsecase
	reset    PasswordResetUsecase
	guard    Guard
	admin    AdminUsecase
	artwork  ArtworkUsecase
	category CategoryUsecase
	contact  ContactUsecase
	profile  ProfileUsecase
	seed     SeedUsecase
}

type limiters struct {
	login        ratelimit.Limiter
	resetRequest ratelimit.Limiter
	resetConfirm ratelimit.Limiter
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithLimiters(t, limiters{
		login:        ratelimit.Noop{},
		resetRequest: ratelimit.Noop{},
		resetConfirm: ratelimit.Noop{},
	})
}

func newTestAppWithLimiters(t *testing.T, l limiters) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	clock := newFakeClock()

	cfg := &config.GalleryServiceConfig{
		AppName:     "Art Gallery",
		FrontendURL: "http://gallery.test/",
		Token: config.TokenConfig{
			ExpiresIn:             time.Hour,
			VerificationExpiresIn: 24 * time.Hour,
			ResetCodeExpiresIn:    10 * time.Minute,
		},
	}

	sessions, err := auth.NewSessionManager("test-secret", "art-gallery-api", time.Hour)
	require.NoError(t, err)
	sessions.WithClock(clock.Now)

	app := &testApp{
		clock:      clock,
		users:      newFakeUserRepo(),
		artworks:   newFakeArtworkRepo(),
		categories: newFakeCategoryRepo(),
		mailer:     &fakeMailer{},
		storage:    newFakeStorage(),
		sessions:   sessions,
		cfg:        cfg,
	}

	authUC := NewAuthUsecase(app.users, sessions, app.mailer, l.login, cfg, &logger).(*authUsecase)
	authUC.now = clock.Now
	app.auth = authUC

	resetUC := NewPasswordResetUsecase(
		app.users, app.mailer, l.resetRequest, l.resetConfirm, cfg, &logger,
	).(*passwordResetUsecase)
	resetUC.now = clock.Now
	app.reset = resetUC

	app.guard = NewGuard(app.users, sessions)
	app.admin = NewAdminUsecase(app.users, app.artworks, app.storage, &logger)
	app.artwork = NewArtworkUsecase(app.artworks, app.users, app.storage, app.guard, &logger)
	app.category = NewCategoryUsecase(app.categories)
	app.contact = NewContactUsecase(app.artworks, app.users, app.mailer, cfg)
	app.profile = NewProfileUsecase(app.users)
	app.seed = NewSeedUsecase(app.users)

	return app
}

// register signs up an artist and returns the verification token from the email.
func (a *testApp) register(t *testing.T, username, email, password string) (*model.User, string) {
	t.Helper()

	user, err := a.auth.Register(context.Background(), RegisterParams{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	match := verificationLinkPattern.FindStringSubmatch(a.mailer.last().Body)
	require.Len(t, match, 2, "verification link not found in email")

	return user, match[1]
}

// activeArtist returns a verified, activated artist.
func (a *testApp) activeArtist(t *testing.T, username, email, password string) *model.User {
	t.Helper()

	user, token := a.register(t, username, email, password)
	require.NoError(t, a.auth.VerifyEmail(context.Background(), token))

	updated, err := a.admin.ToggleUserStatus(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	require.True(t, updated.IsActive)

	return updated
}

func (a *testApp) superAdmin(t *testing.T) *model.User {
	t.Helper()

	hash, err := security.HashPassword("admin-password")
	require.NoError(t, err)

	admin, err := a.users.CreateUser(context.Background(), &model.User{
		Username:        "Super Admin",
		Email:           "admin@gallery.test",
		PasswordHash:    hash,
		Role:            model.RoleSuperAdmin,
		IsActive:        true,
		IsEmailVerified: true,
	})
	require.NoError(t, err)

	return admin
}

func actorOf(u *model.User) Actor {
	return Actor{ID: u.ID.Hex(), Role: u.Role}
}

func resetCodeFrom(t *testing.T, body string) string {
	t.Helper()

	match := resetCodePattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "reset code not found in email")

	return match[1]
}
