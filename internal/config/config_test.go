package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/cyber-thread/internal/config"
)

var allKeys = []string{
	"APP_ENV", "PORT", "DATABASE_DRIVER", "DATABASE_URL", "DATABASE_MAX_CONNS",
	"JWT_SECRET", "COOKIE_SECURE", "BCRYPT_COST", "MEDIA_BACKEND",
	"IMAGEKIT_PUBLIC_KEY", "IMAGEKIT_PRIVATE_KEY", "IMAGEKIT_URL_ENDPOINT",
	"S3_BUCKET", "S3_REGION", "S3_PUBLIC_BASE_URL", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_ENDPOINT",
	"MEDIA_UPLOAD_TIMEOUT", "MEDIA_POST_FOLDER", "MEDIA_PROFILE_FOLDER", "UPLOAD_TEMP_DIR", "MAX_UPLOAD_BYTES",
}

// setEnv clears every known key, then applies vals. Production mode keeps
// Load from reading a stray .env file.
func setEnv(t *testing.T, vals map[string]string) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	t.Setenv("APP_ENV", "production")
	for k, v := range vals {
		t.Setenv(k, v)
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET":            "0123456789abcdef0123456789abcdef",
		"IMAGEKIT_PUBLIC_KEY":   "public_x",
		"IMAGEKIT_PRIVATE_KEY":  "private_x",
		"IMAGEKIT_URL_ENDPOINT": "https://ik.imagekit.io/demo",
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "cyber-thread.db", cfg.Database.URL)
	assert.Equal(t, 5, cfg.Database.MaxConns)
	assert.Equal(t, "imagekit", cfg.Media.Backend)
	assert.Equal(t, 30*time.Second, cfg.Media.UploadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Media.ImageKit.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Media.S3.Timeout)
	assert.Equal(t, "/posts", cfg.Media.PostFolder)
	assert.Equal(t, "/profiles", cfg.Media.ProfileFolder)
	assert.Equal(t, int64(10<<20), cfg.Media.MaxUploadBytes)
}

func TestLoad_TrimsAndOverrides(t *testing.T) {
	vals := validEnv()
	vals["PORT"] = "  9090 "
	vals["COOKIE_SECURE"] = "false"
	vals["BCRYPT_COST"] = "4"
	vals["DATABASE_DRIVER"] = "Postgres"
	vals["DATABASE_URL"] = "postgres://u:p@localhost/db"
	vals["MEDIA_UPLOAD_TIMEOUT"] = "5s"
	setEnv(t, vals)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Media.ImageKit.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Media.S3.Timeout)
}

func TestLoad_S3Backend(t *testing.T) {
	setEnv(t, map[string]string{
		"JWT_SECRET":         "0123456789abcdef0123456789abcdef",
		"MEDIA_BACKEND":      "s3",
		"S3_BUCKET":          "media",
		"S3_REGION":          "eu-west-1",
		"S3_PUBLIC_BASE_URL": "https://cdn.example.com",
	})

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "media", cfg.Media.S3.Bucket)
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	setEnv(t, map[string]string{
		"JWT_SECRET":       "short",
		"BCRYPT_COST":      "20",
		"DATABASE_DRIVER":  "mysql",
		"MAX_UPLOAD_BYTES": "lots",
	})

	_, err := config.Load()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "JWT_SECRET must be at least 32 characters")
	assert.Contains(t, msg, "BCRYPT_COST must be between 4 and 14")
	assert.Contains(t, msg, "DATABASE_URL is required for mysql")
	assert.Contains(t, msg, "IMAGEKIT_PRIVATE_KEY is required")
	assert.Contains(t, msg, "invalid MAX_UPLOAD_BYTES")
}

func TestLoad_UnknownBackends(t *testing.T) {
	vals := validEnv()
	vals["DATABASE_DRIVER"] = "oracle"
	vals["MEDIA_BACKEND"] = "ftp"
	setEnv(t, vals)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `DATABASE_DRIVER "oracle"`)
	assert.Contains(t, err.Error(), `MEDIA_BACKEND "ftp"`)
}

func TestLoad_ReadsDotEnvOutsideProduction(t *testing.T) {
	setEnv(t, nil)
	// godotenv never overrides variables that exist, even when empty.
	for _, k := range allKeys {
		os.Unsetenv(k)
	}

	dir := t.TempDir()
	content := "JWT_SECRET=0123456789abcdef0123456789abcdef\n" +
		"IMAGEKIT_PUBLIC_KEY=pub\nIMAGEKIT_PRIVATE_KEY=priv\nIMAGEKIT_URL_ENDPOINT=https://ik.imagekit.io/x\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Chdir(dir)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "priv", cfg.Media.ImageKit.PrivateKey)
	assert.False(t, cfg.IsProduction())
}
