package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "member_id", cfg.Columns.Member)
	assert.Equal(t, "amount", cfg.Columns.Amount)
	assert.Equal(t, "", cfg.Columns.ReceiptID, "synthetic keys by default")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg, err := InitializeConfig()
		require.NoError(t, err)
		return cfg
	}

	cfg := valid()
	cfg.Log.Level = "nonsense"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Columns.Amount = ""
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Columns.Item = cfg.Columns.Store
	assert.Error(t, validateConfig(cfg))
}

func TestColumnNames(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	names := cfg.ColumnNames()
	assert.Equal(t, cfg.Columns.Member, names.Member)
	assert.Equal(t, cfg.Columns.ProductCode, names.ProductCode)
}

func TestConfigureLogging(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	cfg.Log.Level = "debug"
	logger := ConfigureLogging(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	cfg.Log.Level = "broken"
	logger = ConfigureLogging(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
