package config

import "time"

// Config holds runtime settings for the Coffee'n me client.
//
// Fields:
//   - ServerBaseURL: absolute base URL of the backend API.
//   - StorePath: path of the local sqlite store.
//   - LogFile: path of the rotated client log.
//   - RequestTimeout: per-request HTTP timeout.
//   - SearchDebounce: quiet window for search-as-you-type.
type Config struct {
	ServerBaseURL  string
	StorePath      string
	LogFile        string
	RequestTimeout time.Duration
	SearchDebounce time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.StorePath = "coffeenme.db"
	c.LogFile = "coffeenme.log"
	c.RequestTimeout = 10 * time.Second
	c.SearchDebounce = 300 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
