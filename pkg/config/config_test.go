package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.App.Port)
	require.Equal(t, "https://robohash.org/", cfg.Avatar.BaseURL)
	require.Equal(t, ".png", cfg.Avatar.ImageSuffix)
	require.Equal(t, "set2", cfg.Avatar.Set)
	require.Equal(t, "200x200", cfg.Avatar.Size)
	require.Equal(t, "default", cfg.Avatar.DefaultSeed)
	require.Equal(t, "0 3 * * *", cfg.Jobs.AvatarReconcileCron)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("AVATAR_BASE_URL", "https://avatars.example.com/v1/")
	t.Setenv("AVATAR_SIZE", "64x64")
	t.Setenv("REDIS_CACHE_TTL_SECONDS", "15")
	t.Setenv("REDIS_CACHE_ENABLED", "false")
	t.Setenv("AVATAR_RECONCILE_CRON", "off")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://avatars.example.com/v1/", cfg.Avatar.BaseURL)
	require.Equal(t, "64x64", cfg.Avatar.Size)
	require.Equal(t, 15, cfg.Redis.CacheTTLSeconds)
	require.False(t, cfg.Redis.CacheEnabled)
	require.Empty(t, cfg.Jobs.AvatarReconcileCron)
}

func TestLoadConfig_InvalidAvatarBaseURL(t *testing.T) {
	t.Setenv("AVATAR_BASE_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_WildcardOriginWithCredentials(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	_, err = LoadConfig()
	require.NoError(t, err)
}

func TestLoadConfig_InvalidReconcileCron(t *testing.T) {
	t.Setenv("AVATAR_RECONCILE_CRON", "nightly")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_EmptyValuesAreKept(t *testing.T) {
	t.Setenv("AVATAR_SET", "")
	t.Setenv("AVATAR_SIZE", "")
	t.Setenv("AVATAR_RECONCILE_CRON", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Empty(t, cfg.Avatar.Set)
	require.Empty(t, cfg.Avatar.Size)
	require.Equal(t, ".png", cfg.Avatar.ImageSuffix)
	require.Empty(t, cfg.Jobs.AvatarReconcileCron)
}

func TestLoadConfig_BlankCronDisables(t *testing.T) {
	t.Setenv("AVATAR_RECONCILE_CRON", "   ")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.Jobs.AvatarReconcileCron)
}
