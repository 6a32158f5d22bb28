package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/config"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/payload"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/shared/middleware"
	"github.com/vasapolrittideah/art-gallery-api/shared/ratelimit"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

// Usecases groups the application services the router exposes.
type Usecases struct {
	Auth          usecase.AuthUsecase
	PasswordReset usecase.PasswordResetUsecase
	Profile       usecase.ProfileUsecase
	Admin         usecase.AdminUsecase
	Artwork       usecase.ArtworkUsecase
	Category      usecase.CategoryUsecase
	Contact       usecase.ContactUsecase
	Guard         usecase.Guard
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Config    *config.GalleryServiceConfig
	Logger    *zerolog.Logger
	Validator *validator.Validator
	Limiter   ratelimit.Limiter

	// StaticDir is served under Config.Storage.PublicPath when set.
	StaticDir string
}

// NewRouter builds the HTTP API.
func NewRouter(uc Usecases, opts RouterOptions) http.Handler {
	cfg := opts.Config

	authHandler := newAuthHTTPHandler(uc.Auth, uc.PasswordReset, uc.Profile, opts.Validator)
	artworkHandler := newArtworkHTTPHandler(uc.Artwork, opts.Validator, cfg.Server.MaxUploadSize)
	categoryHandler := newCategoryHTTPHandler(uc.Category, opts.Validator)
	adminHandler := newAdminHTTPHandler(uc.Admin, uc.Artwork)
	contactHandler := newContactHTTPHandler(uc.Contact, opts.Validator)

	authenticate := middleware.Authenticate(resolveIdentity(uc.Guard))
	superAdminOnly := middleware.RequireRole(string(model.RoleSuperAdmin))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(*opts.Logger)...)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if opts.StaticDir != "" {
		prefix := strings.TrimRight(cfg.Storage.PublicPath, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.Server.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
		}
		r.Use(middleware.RateLimit(opts.Limiter, opts.Logger))

		r.Get("/health", health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/verify-email/{token}", authHandler.VerifyEmail)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Put("/reset-password", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/artworks", func(r chi.Router) {
			r.Get("/", artworkHandler.ListArtworks)
			r.Get("/{id}", artworkHandler.GetArtwork)
			r.Get("/artist/{artistId}", artworkHandler.ListArtworksByArtist)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", artworkHandler.CreateArtwork)
				r.Put("/{id}", artworkHandler.UpdateArtwork)
				r.Delete("/{id}", artworkHandler.DeleteArtwork)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.ListCategories)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, superAdminOnly)
				r.Post("/", categoryHandler.CreateCategory)
				r.Put("/{id}", categoryHandler.UpdateCategory)
				r.Delete("/{id}", categoryHandler.DeleteCategory)
			})
		})

		r.Post("/contact", contactHandler.SendMessage)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate, superAdminOnly)
			r.Get("/users", adminHandler.ListUsers)
			r.Delete("/users/{id}", adminHandler.DeleteUser)
			r.Put("/users/{id}/toggle-status", adminHandler.ToggleUserStatus)
			r.Get("/artworks", adminHandler.ListArtworks)
			r.Delete("/artworks/{id}", adminHandler.DeleteArtwork)
		})
	})

	return r
}

func resolveIdentity(guard usecase.Guard) middleware.ResolverFunc {
	return func(ctx context.Context, token string) (middleware.Identity, error) {
		user, err := guard.Authenticate(ctx, token)
		if err != nil {
			return middleware.Identity{}, err
		}
		return middleware.Identity{UserID: user.ID.Hex(), Role: string(user.Role)}, nil
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payload.HealthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC(),
	})
}
