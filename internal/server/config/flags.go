package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophdrive/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-l", "-k", "-j", "-b", "-e", "-w", "-m", "-p", "-o"}

// parseFlags applies the short command-line flags:
//
//	-a  HTTP bind address
//	-d  PostgreSQL DSN
//	-l  log level
//	-k  HS256 secret for development tokens
//	-j  JWKS URL of the identity provider
//	-b  S3 bucket
//	-e  S3 endpoint
//	-w  upload worker count (1 keeps uploads sequential)
//	-m  Gemini model name
//	-p  summary policy (ephemeral|persist)
//	-o  orphan policy (cleanup|keep)
func parseFlags(c *Config) {
	parseArgs(c, os.Args[1:])
}

func parseArgs(c *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&c.HTTPAddr, "a", c.HTTPAddr, "address and port to run server")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "database DSN")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	fs.StringVar(&c.JWTSecret, "k", c.JWTSecret, "jwt secret")
	fs.StringVar(&c.JWKSURL, "j", c.JWKSURL, "jwks url")
	fs.StringVar(&c.S3Bucket, "b", c.S3Bucket, "S3 bucket")
	fs.StringVar(&c.S3Endpoint, "e", c.S3Endpoint, "S3 endpoint")
	fs.IntVar(&c.UploadConcurrency, "w", c.UploadConcurrency, "upload workers")
	fs.StringVar(&c.GeminiModel, "m", c.GeminiModel, "gemini model")
	fs.StringVar(&c.SummaryPolicy, "p", c.SummaryPolicy, "summary policy")
	fs.StringVar(&c.OrphanPolicy, "o", c.OrphanPolicy, "orphan policy")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		panic(err)
	}
}
