package config

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("QSERIES_TRUNC", "100")
		t.Setenv("QSERIES_DISPLAY_TERMS", "12")
		t.Setenv("QSERIES_ETA_CACHE", "false")
		t.Setenv("QSERIES_LOG_LEVEL", "debug")
		t.Setenv("QSERIES_LOG_DEV", "true")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 100, cfg.Trunc)
		require.Equal(t, 12, cfg.DisplayTerms)
		require.False(t, cfg.EtaCache)
		require.Equal(t, "debug", cfg.Level)
		require.True(t, cfg.Development)
	})

	t.Run("Malformed", func(t *testing.T) {
		t.Setenv("QSERIES_TRUNC", "fifty")
		_, err := Load()
		require.Error(t, err)
		require.Equal(t, Default(), LoadOrDefault())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		t.Setenv("QSERIES_TRUNC", "0")
		_, err := Load()
		require.True(t, errors.Is(err, ErrInvalidConfig))
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	cfg.DisplayTerms = -1
	require.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
}
