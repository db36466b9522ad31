package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int      `env:"TEST_CFG_PORT" envDefault:"8080"`
	Host     string   `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Brokers  []string `env:"TEST_CFG_BROKERS" envDefault:"a:1,b:2" envSeparator:","`
	CacheOff bool     `env:"TEST_CFG_CACHE_OFF" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Brokers)
	assert.False(t, cfg.CacheOff)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_HOST", "0.0.0.0")
	t.Setenv("TEST_CFG_BROKERS", "kafka:9092")
	t.Setenv("TEST_CFG_CACHE_OFF", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Brokers)
	assert.True(t, cfg.CacheOff)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type validatedConfig struct {
	Port int `env:"TEST_CFG_VALIDATED_PORT" envDefault:"8080"`
}

func (c *validatedConfig) Validate() error {
	if c.Port > 65535 {
		return errors.New("port out of range")
	}
	return nil
}

func TestLoad_RunsValidator(t *testing.T) {
	t.Setenv("TEST_CFG_VALIDATED_PORT", "70000")

	var cfg validatedConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config: port out of range")
}

func TestLoad_ValidatorPasses(t *testing.T) {
	var cfg validatedConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, 8080, cfg.Port)
}
