package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	// ProgressResetDelay is how long finished upload progress stays on
	// screen before the view is cleared.
	ProgressResetDelay time.Duration
	SessionDir         string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 60 * time.Second
	c.ProgressResetDelay = 2 * time.Second
	c.SessionDir = defaultSessionDir()
	c.LogLevel = "warn"
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gophdrive")
	}
	return ".gophdrive"
}

// LoadConfig constructs a Config: defaults, environment, JSON, then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
