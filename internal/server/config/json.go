package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/flagx"
	"github.com/dmitrijs2005/gophdrive/internal/timex"
)

// JsonConfig is the on-disk DTO. Pointer fields distinguish "absent" from
// zero so a partial file only overrides what it names.
type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	LogLevel        *string         `json:"log_level"`
	DatabaseDSN     *string         `json:"database_dsn"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	CORSOrigins     []string        `json:"cors_origins"`

	JWTSecret *string `json:"jwt_secret"`
	JWKSURL   *string `json:"jwks_url"`
	JWTIssuer *string `json:"jwt_issuer"`

	S3Endpoint     *string         `json:"s3_endpoint"`
	S3Region       *string         `json:"s3_region"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3UsePathStyle *bool           `json:"s3_use_path_style"`
	SignedURLTTL   *timex.Duration `json:"signed_url_ttl"`

	UploadConcurrency *int    `json:"upload_concurrency"`
	MaxUploadBytes    *int64  `json:"max_upload_bytes"`
	OrphanPolicy      *string `json:"orphan_policy"`

	GeminiAPIKey     *string         `json:"gemini_api_key"`
	GeminiModel      *string         `json:"gemini_model"`
	SummaryTextLimit *int            `json:"summary_text_limit"`
	SummaryPolicy    *string         `json:"summary_policy"`
	SummaryCacheSize *int            `json:"summary_cache_size"`
	SummaryCacheTTL  *timex.Duration `json:"summary_cache_ttl"`
	SummaryRateLimit *float64        `json:"summary_rate_limit"`
	SummaryRateBurst *int            `json:"summary_rate_burst"`

	PaymentKeyID    *string `json:"payment_key_id"`
	PaymentAmount   *int64  `json:"payment_amount"`
	PaymentCurrency *string `json:"payment_currency"`
}

// parseJson overlays the file named by -c/-config, if any. It panics when
// the file cannot be read or decoded.
func parseJson(c *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(c)
}

func (jc *JsonConfig) apply(c *Config) {
	set(&c.HTTPAddr, jc.HTTPAddr)
	set(&c.LogLevel, jc.LogLevel)
	set(&c.DatabaseDSN, jc.DatabaseDSN)
	setDuration(&c.RequestTimeout, jc.RequestTimeout)
	setDuration(&c.ShutdownTimeout, jc.ShutdownTimeout)
	if jc.CORSOrigins != nil {
		c.CORSOrigins = jc.CORSOrigins
	}

	set(&c.JWTSecret, jc.JWTSecret)
	set(&c.JWKSURL, jc.JWKSURL)
	set(&c.JWTIssuer, jc.JWTIssuer)

	set(&c.S3Endpoint, jc.S3Endpoint)
	set(&c.S3Region, jc.S3Region)
	set(&c.S3Bucket, jc.S3Bucket)
	set(&c.S3AccessKey, jc.S3AccessKey)
	set(&c.S3SecretKey, jc.S3SecretKey)
	set(&c.S3UsePathStyle, jc.S3UsePathStyle)
	setDuration(&c.SignedURLTTL, jc.SignedURLTTL)

	set(&c.UploadConcurrency, jc.UploadConcurrency)
	set(&c.MaxUploadBytes, jc.MaxUploadBytes)
	set(&c.OrphanPolicy, jc.OrphanPolicy)

	set(&c.GeminiAPIKey, jc.GeminiAPIKey)
	set(&c.GeminiModel, jc.GeminiModel)
	set(&c.SummaryTextLimit, jc.SummaryTextLimit)
	set(&c.SummaryPolicy, jc.SummaryPolicy)
	set(&c.SummaryCacheSize, jc.SummaryCacheSize)
	setDuration(&c.SummaryCacheTTL, jc.SummaryCacheTTL)
	set(&c.SummaryRateLimit, jc.SummaryRateLimit)
	set(&c.SummaryRateBurst, jc.SummaryRateBurst)

	set(&c.PaymentKeyID, jc.PaymentKeyID)
	set(&c.PaymentAmount, jc.PaymentAmount)
	set(&c.PaymentCurrency, jc.PaymentCurrency)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
