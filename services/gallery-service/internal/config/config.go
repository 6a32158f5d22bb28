package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/art-gallery-api/shared/auth"
	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
	"github.com/vasapolrittideah/art-gallery-api/shared/storage"
)

const (
	StorageDriverDisk = "disk"
	StorageDriverS3   = "s3"
)

// GalleryServiceConfig is loaded once at startup and passed to the components that need it.
type GalleryServiceConfig struct {
	AppName     string `env:"APP_NAME"     envDefault:"Art Gallery"`
	AppEnv      string `env:"APP_ENV"      envDefault:"production"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	GopsAddr    string `env:"GOPS_ADDR"`

	Server     ServerConfig     `envPrefix:"SERVER_"`
	Mongo      MongoConfig      `envPrefix:"MONGO_"`
	Token      TokenConfig      `envPrefix:"JWT_"`
	SMTP       mailer.Config    `envPrefix:"SMTP_"`
	SuperAdmin SuperAdminConfig `envPrefix:"SUPER_ADMIN_"`
	Storage    StorageConfig    `envPrefix:"STORAGE_"`
	S3         storage.S3Config `envPrefix:"S3_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	RateLimit  RateLimitConfig  `envPrefix:"RATE_LIMIT_"`
	Jobs       JobsConfig       `envPrefix:"JOBS_"`
}

type ServerConfig struct {
	Addr            string        `env:"ADDR"             envDefault:":5000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS"  envDefault:"*"     envSeparator:","`
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE"  envDefault:"10485760"`
}

type MongoConfig struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"art_gallery"`
}

type TokenConfig struct {
	Secret                string        `env:"SECRET"`
	Issuer                string        `env:"ISSUER"                  envDefault:"art-gallery-api"`
	ExpiresIn             time.Duration `env:"EXPIRES_IN"              envDefault:"168h"`
	VerificationExpiresIn time.Duration `env:"VERIFICATION_EXPIRES_IN" envDefault:"24h"`
	ResetCodeExpiresIn    time.Duration `env:"RESET_CODE_EXPIRES_IN"   envDefault:"10m"`
}

type SuperAdminConfig struct {
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

// Enabled reports whether both admin credentials are configured.
func (c SuperAdminConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

type StorageConfig struct {
	Driver     string `env:"DRIVER"      envDefault:"disk"`
	Dir        string `env:"DIR"         envDefault:"public/artworks"`
	PublicPath string `env:"PUBLIC_PATH" envDefault:"/artworks"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`
}

type RateLimitConfig struct {
	Requests      int           `env:"REQUESTS"       envDefault:"100"`
	Window        time.Duration `env:"WINDOW"         envDefault:"15m"`
	LoginAttempts int           `env:"LOGIN_ATTEMPTS" envDefault:"10"`
	LoginWindow   time.Duration `env:"LOGIN_WINDOW"   envDefault:"15m"`
	ResetAttempts int           `env:"RESET_ATTEMPTS" envDefault:"5"`
	ResetWindow   time.Duration `env:"RESET_WINDOW"   envDefault:"10m"`
}

type JobsConfig struct {
	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"@hourly"`
}

// Load parses the environment and validates the result.
func Load() (*GalleryServiceConfig, error) {
	cfg, err := env.ParseAs[GalleryServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports the first missing or inconsistent setting.
func (c *GalleryServiceConfig) Validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable: %w", auth.ErrMissingSecret)
	}
	if c.Token.ExpiresIn <= 0 || c.Token.VerificationExpiresIn <= 0 || c.Token.ResetCodeExpiresIn <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Mongo.URI == "" {
		return errors.New("missing MONGO_URI environment variable")
	}
	if err := c.SMTP.Validate(); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case StorageDriverDisk:
		if c.Storage.Dir == "" {
			return errors.New("missing STORAGE_DIR environment variable")
		}
	case StorageDriverS3:
		if c.S3.Bucket == "" {
			return errors.New("missing S3_BUCKET environment variable")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.LoginAttempts <= 0 || c.RateLimit.ResetAttempts <= 0 {
		return errors.New("rate limits must be positive")
	}

	return nil
}

// IsDevelopment reports whether the service runs locally.
func (c *GalleryServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}
