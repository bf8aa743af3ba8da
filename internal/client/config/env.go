package config

import "github.com/dmitrijs2005/gophdrive/internal/envx"

func parseEnv(c *Config) {
	if err := envx.Load(); err != nil {
		panic(err)
	}

	c.ServerURL = envx.String("GOPHDRIVE_SERVER_URL", c.ServerURL)
	c.OnlineCheckInterval = envx.Duration("GOPHDRIVE_ONLINE_CHECK_INTERVAL", c.OnlineCheckInterval)
	c.RequestTimeout = envx.Duration("GOPHDRIVE_CLIENT_TIMEOUT", c.RequestTimeout)
	c.ProgressResetDelay = envx.Duration("GOPHDRIVE_PROGRESS_RESET_DELAY", c.ProgressResetDelay)
	c.SessionDir = envx.String("GOPHDRIVE_SESSION_DIR", c.SessionDir)
	c.LogLevel = envx.String("GOPHDRIVE_CLIENT_LOG_LEVEL", c.LogLevel)
}
