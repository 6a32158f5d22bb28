package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
)

const sweepTimeout = time.Minute

// SecretSweeper clears verification tokens and reset codes that can no longer be redeemed.
type SecretSweeper struct {
	userRepo repository.UserRepository
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewSecretSweeper(userRepo repository.UserRepository, logger *zerolog.Logger) *SecretSweeper {
	return &SecretSweeper{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Run implements cron.Job.
func (s *SecretSweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.Sweep(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear expired secrets")
	}
}

// Sweep clears expired secrets once and returns the number of accounts touched.
func (s *SecretSweeper) Sweep(ctx context.Context) (int64, error) {
	cleared, err := s.userRepo.ClearExpiredSecrets(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if cleared > 0 {
		s.logger.Info().Int64("accounts", cleared).Msg("cleared expired secrets")
	}

	return cleared, nil
}

// Start schedules the sweeper and starts the cron runner. Callers stop it on shutdown.
func Start(schedule string, sweeper *SecretSweeper) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(schedule, sweeper); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	c.Start()
	return c, nil
}
