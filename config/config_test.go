package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_api/config"
)

func Test_Load_RequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func Test_Load_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("ADMIN_DEFAULT_USERNAME", "")
	t.Setenv("ADMIN_DEFAULT_PASSWORD", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin1234", cfg.AdminPassword)
	assert.Equal(t, "3001", cfg.Port)
}

func Test_Load_TokenTTL(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")

	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)

	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "zero")
	_, err = config.Load()
	assert.Error(t, err)

	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "-5")
	_, err = config.Load()
	assert.Error(t, err)
}

func Test_DSN(t *testing.T) {
	cfg := config.Config{
		DBHost: "db.internal", DBUser: "svc", DBPassword: "pw", DBName: "library", DBPort: "5433",
	}
	assert.Equal(t,
		"host=db.internal user=svc password=pw dbname=library port=5433 sslmode=disable",
		cfg.DSN())
}
