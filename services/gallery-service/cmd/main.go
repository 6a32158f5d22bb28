package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/config"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/handler"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/job"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/usecase"
	"github.com/vasapolrittideah/art-gallery-api/shared/auth"
	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
	"github.com/vasapolrittideah/art-gallery-api/shared/ratelimit"
	"github.com/vasapolrittideah/art-gallery-api/shared/storage"
	"github.com/vasapolrittideah/art-gallery-api/shared/validator"
)

const startupTimeout = 30 * time.Second

type limiters struct {
	global       ratelimit.Limiter
	login        ratelimit.Limiter
	resetRequest ratelimit.Limiter
	resetConfirm ratelimit.Limiter
	closeRedis   func() error
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "gallery-service").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger = newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongo")
	}
	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	artworkRepo := repository.NewArtworkMongoRepository(ctx, &logger, db)
	categoryRepo := repository.NewCategoryMongoRepository(ctx, &logger, db)

	m, err := mailer.NewMailer(cfg.SMTP)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create mailer")
	}

	sessions, err := auth.NewSessionManager(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.ExpiresIn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session manager")
	}

	store, staticDir, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create storage")
	}

	v, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	lim := newLimiters(cfg, &logger)

	guard := usecase.NewGuard(userRepo, sessions)
	uc := handler.Usecases{
		Auth:          usecase.NewAuthUsecase(userRepo, sessions, m, lim.login, cfg, &logger),
		PasswordReset: usecase.NewPasswordResetUsecase(userRepo, m, lim.resetRequest, lim.resetConfirm, cfg, &logger),
		Profile:       usecase.NewProfileUsecase(userRepo),
		Admin:         usecase.NewAdminUsecase(userRepo, artworkRepo, store, &logger),
		Artwork:       usecase.NewArtworkUsecase(artworkRepo, userRepo, store, guard, &logger),
		Category:      usecase.NewCategoryUsecase(categoryRepo),
		Contact:       usecase.NewContactUsecase(artworkRepo, userRepo, m, cfg),
		Guard:         guard,
	}

	if cfg.SuperAdmin.Enabled() {
		created, err := usecase.NewSeedUsecase(userRepo).SeedSuperAdmin(ctx, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to seed super admin")
		}
		if created {
			logger.Info().Str("email", cfg.SuperAdmin.Email).Msg("super admin created")
		}
	} else {
		logger.Warn().Msg("SUPER_ADMIN_EMAIL or SUPER_ADMIN_PASSWORD not set, skipping super admin seed")
	}

	scheduler, err := job.Start(cfg.Jobs.SweepSchedule, job.NewSecretSweeper(userRepo, &logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start jobs")
	}

	if cfg.GopsAddr != "" {
		if err := agent.Listen(agent.Options{Addr: cfg.GopsAddr, ShutdownCleanup: true}); err != nil {
			logger.Fatal().Err(err).Msg("failed to start gops agent")
		}
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handler.NewRouter(uc, handler.RouterOptions{
			Config:    cfg,
			Logger:    &logger,
			Validator: v,
			Limiter:   lim.global,
			StaticDir: staticDir,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("gallery service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to serve http")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gallery service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server")
	}

	<-scheduler.Stop().Done()

	if lim.closeRedis != nil {
		if err := lim.closeRedis(); err != nil {
			logger.Error().Err(err).Msg("failed to close redis pool")
		}
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to disconnect from mongo")
	}
}

func newLogger(cfg *config.GalleryServiceConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().Timestamp().Str("service", "gallery-service").Logger()
}

// newStorage returns the configured backend and, for disk storage, the directory to serve.
func newStorage(ctx context.Context, cfg *config.GalleryServiceConfig) (storage.Storage, string, error) {
	if cfg.Storage.Driver == config.StorageDriverS3 {
		s, err := storage.NewS3Storage(ctx, cfg.S3)
		return s, "", err
	}

	s, err := storage.NewDiskStorage(cfg.Storage.Dir)
	if err != nil {
		return nil, "", err
	}
	return s, s.Dir(), nil
}

// newLimiters falls back to no limits when Redis is not configured.
func newLimiters(cfg *config.GalleryServiceConfig, logger *zerolog.Logger) limiters {
	if cfg.Redis.Addr == "" {
		logger.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
		return limiters{
			global:       ratelimit.Noop{},
			login:        ratelimit.Noop{},
			resetRequest: ratelimit.Noop{},
			resetConfirm: ratelimit.Noop{},
		}
	}

	pool := ratelimit.NewPool(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rl := cfg.RateLimit

	return limiters{
		global:       ratelimit.NewRedisLimiter(pool, "global", rl.Requests, rl.Window),
		login:        ratelimit.NewRedisLimiter(pool, "login", rl.LoginAttempts, rl.LoginWindow),
		resetRequest: ratelimit.NewRedisLimiter(pool, "reset-request", rl.ResetAttempts, rl.ResetWindow),
		resetConfirm: ratelimit.NewRedisLimiter(pool, "reset-confirm", rl.ResetAttempts, rl.ResetWindow),
		closeRedis:   pool.Close,
	}
}
