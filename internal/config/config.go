// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/msomdec/cyber-thread/internal/media/imagekit"
	"github.com/msomdec/cyber-thread/internal/media/s3store"
)

const (
	defaultPort           = "8080"
	defaultDatabaseURL    = "cyber-thread.db"
	defaultMaxConns       = 5
	defaultBcryptCost     = 12
	defaultUploadTimeout  = 30 * time.Second
	defaultMaxUploadBytes = 10 << 20
	minJWTSecretLen       = 32
	minBcryptCost         = 4
	maxBcryptCost         = 14
)

// Config is the fully validated process configuration.
type Config struct {
	AppEnv       string
	Port         string
	JWTSecret    string
	CookieSecure bool
	BcryptCost   int

	Database DatabaseConfig
	Media    MediaConfig
}

// DatabaseConfig selects and sizes the SQL backend.
type DatabaseConfig struct {
	Driver   string // sqlite, postgres, mysql
	URL      string
	MaxConns int
}

// MediaConfig selects the external media host and bounds uploads.
type MediaConfig struct {
	Backend        string // imagekit, s3
	ImageKit       imagekit.Config
	S3             s3store.Config
	UploadTimeout  time.Duration
	PostFolder     string
	ProfileFolder  string
	TempDir        string
	MaxUploadBytes int64
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// Load reads configuration from the environment, loading a .env file first
// outside production. All problems are reported together.
func Load() (*Config, error) {
	if env("APP_ENV", "development") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	var errs []error

	cfg := &Config{
		AppEnv:       env("APP_ENV", "development"),
		Port:         env("PORT", defaultPort),
		JWTSecret:    env("JWT_SECRET", ""),
		CookieSecure: env("COOKIE_SECURE", "true") != "false",
		Database: DatabaseConfig{
			Driver: strings.ToLower(env("DATABASE_DRIVER", "sqlite")),
			URL:    env("DATABASE_URL", ""),
		},
		Media: MediaConfig{
			Backend: strings.ToLower(env("MEDIA_BACKEND", "imagekit")),
			ImageKit: imagekit.Config{
				PublicKey:   env("IMAGEKIT_PUBLIC_KEY", ""),
				PrivateKey:  env("IMAGEKIT_PRIVATE_KEY", ""),
				URLEndpoint: env("IMAGEKIT_URL_ENDPOINT", ""),
			},
			S3: s3store.Config{
				Bucket:          env("S3_BUCKET", ""),
				Region:          env("S3_REGION", ""),
				PublicBaseURL:   env("S3_PUBLIC_BASE_URL", ""),
				AccessKeyID:     env("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: env("S3_SECRET_ACCESS_KEY", ""),
				Endpoint:        env("S3_ENDPOINT", ""),
			},
			PostFolder:    env("MEDIA_POST_FOLDER", "/posts"),
			ProfileFolder: env("MEDIA_PROFILE_FOLDER", "/profiles"),
			TempDir:       env("UPLOAD_TEMP_DIR", os.TempDir()),
		},
	}

	switch {
	case cfg.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case len(cfg.JWTSecret) < minJWTSecretLen:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen))
	}

	var err error
	if cfg.BcryptCost, err = envInt("BCRYPT_COST", defaultBcryptCost); err != nil {
		errs = append(errs, err)
	} else if cfg.BcryptCost < minBcryptCost || cfg.BcryptCost > maxBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost))
	}

	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.URL == "" {
			cfg.Database.URL = defaultDatabaseURL
		}
	case "postgres", "mysql":
		if cfg.Database.URL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for %s", cfg.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not one of sqlite, postgres, mysql", cfg.Database.Driver))
	}

	if cfg.Database.MaxConns, err = envInt("DATABASE_MAX_CONNS", defaultMaxConns); err != nil {
		errs = append(errs, err)
	} else if cfg.Database.MaxConns < 1 {
		errs = append(errs, errors.New("DATABASE_MAX_CONNS must be at least 1"))
	}

	switch cfg.Media.Backend {
	case "imagekit":
		ik := cfg.Media.ImageKit
		if ik.PublicKey == "" {
			errs = append(errs, errors.New("IMAGEKIT_PUBLIC_KEY is required"))
		}
		if ik.PrivateKey == "" {
			errs = append(errs, errors.New("IMAGEKIT_PRIVATE_KEY is required"))
		}
		if ik.URLEndpoint == "" {
			errs = append(errs, errors.New("IMAGEKIT_URL_ENDPOINT is required"))
		}
	case "s3":
		s3 := cfg.Media.S3
		if s3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required"))
		}
		if s3.Region == "" {
			errs = append(errs, errors.New("S3_REGION is required"))
		}
		if s3.PublicBaseURL == "" {
			errs = append(errs, errors.New("S3_PUBLIC_BASE_URL is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("MEDIA_BACKEND %q is not one of imagekit, s3", cfg.Media.Backend))
	}

	if cfg.Media.UploadTimeout, err = envDuration("MEDIA_UPLOAD_TIMEOUT", defaultUploadTimeout); err != nil {
		errs = append(errs, err)
	} else if cfg.Media.UploadTimeout <= 0 {
		errs = append(errs, errors.New("MEDIA_UPLOAD_TIMEOUT must be positive"))
	}
	cfg.Media.ImageKit.Timeout = cfg.Media.UploadTimeout
	cfg.Media.S3.Timeout = cfg.Media.UploadTimeout

	maxBytes, err := envInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		errs = append(errs, err)
	} else if maxBytes < 1 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	cfg.Media.MaxUploadBytes = int64(maxBytes)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env returns the trimmed value of key, or def when it is unset or blank.
func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
