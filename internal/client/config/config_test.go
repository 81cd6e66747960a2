package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerBaseURL)
	assert.Equal(t, "coffeenme.db", c.StorePath)
	assert.Equal(t, "coffeenme.log", c.LogFile)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 300*time.Millisecond, c.SearchDebounce)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}
