package config

import (
	"github.com/dmitrijs2005/gophdrive/internal/envx"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first without overriding real variables.
//
// Besides the GOPHDRIVE_* names it honours the conventional DATABASE_URL,
// GOOGLE_API_KEY, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// RAZORPAY_KEY_ID.
func parseEnv(c *Config) {
	if err := envx.Load(); err != nil {
		panic(err)
	}

	c.HTTPAddr = envx.String("GOPHDRIVE_HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = envx.String("GOPHDRIVE_LOG_LEVEL", c.LogLevel)
	c.DatabaseDSN = envx.String("DATABASE_URL", c.DatabaseDSN)
	c.DatabaseDSN = envx.String("GOPHDRIVE_DATABASE_DSN", c.DatabaseDSN)
	c.RequestTimeout = envx.Duration("GOPHDRIVE_REQUEST_TIMEOUT", c.RequestTimeout)
	c.ShutdownTimeout = envx.Duration("GOPHDRIVE_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.CORSOrigins = envx.List("GOPHDRIVE_CORS_ORIGINS", c.CORSOrigins)

	c.JWTSecret = envx.String("GOPHDRIVE_JWT_SECRET", c.JWTSecret)
	c.JWKSURL = envx.String("GOPHDRIVE_JWKS_URL", c.JWKSURL)
	c.JWTIssuer = envx.String("GOPHDRIVE_JWT_ISSUER", c.JWTIssuer)

	c.S3Endpoint = envx.String("GOPHDRIVE_S3_ENDPOINT", c.S3Endpoint)
	c.S3Region = envx.String("GOPHDRIVE_S3_REGION", c.S3Region)
	c.S3Bucket = envx.String("GOPHDRIVE_S3_BUCKET", c.S3Bucket)
	c.S3AccessKey = envx.String("AWS_ACCESS_KEY_ID", c.S3AccessKey)
	c.S3SecretKey = envx.String("AWS_SECRET_ACCESS_KEY", c.S3SecretKey)
	c.S3UsePathStyle = envx.Bool("GOPHDRIVE_S3_PATH_STYLE", c.S3UsePathStyle)
	c.SignedURLTTL = envx.Duration("GOPHDRIVE_SIGNED_URL_TTL", c.SignedURLTTL)

	c.UploadConcurrency = envx.Int("GOPHDRIVE_UPLOAD_CONCURRENCY", c.UploadConcurrency)
	c.MaxUploadBytes = envx.Int64("GOPHDRIVE_MAX_UPLOAD_BYTES", c.MaxUploadBytes)
	c.OrphanPolicy = envx.String("GOPHDRIVE_ORPHAN_POLICY", c.OrphanPolicy)

	c.GeminiAPIKey = envx.String("GOOGLE_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = envx.String("GOPHDRIVE_GEMINI_MODEL", c.GeminiModel)
	c.SummaryTextLimit = envx.Int("GOPHDRIVE_SUMMARY_TEXT_LIMIT", c.SummaryTextLimit)
	c.SummaryPolicy = envx.String("GOPHDRIVE_SUMMARY_POLICY", c.SummaryPolicy)
	c.SummaryCacheSize = envx.Int("GOPHDRIVE_SUMMARY_CACHE_SIZE", c.SummaryCacheSize)
	c.SummaryCacheTTL = envx.Duration("GOPHDRIVE_SUMMARY_CACHE_TTL", c.SummaryCacheTTL)
	c.SummaryRateLimit = envx.Float("GOPHDRIVE_SUMMARY_RATE_LIMIT", c.SummaryRateLimit)
	c.SummaryRateBurst = envx.Int("GOPHDRIVE_SUMMARY_RATE_BURST", c.SummaryRateBurst)

	c.PaymentKeyID = envx.String("RAZORPAY_KEY_ID", c.PaymentKeyID)
	c.PaymentAmount = envx.Int64("GOPHDRIVE_PAYMENT_AMOUNT", c.PaymentAmount)
	c.PaymentCurrency = envx.String("GOPHDRIVE_PAYMENT_CURRENCY", c.PaymentCurrency)
}
