// Package server wires configuration, storage, the catalog database and the
// HTTP API together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/ai"
	"github.com/dmitrijs2005/gophdrive/internal/server/auth"
	"github.com/dmitrijs2005/gophdrive/internal/server/blob"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/httpapi"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophdrive/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := blob.NewS3Store(ctx, blob.Options{
		Endpoint:       c.S3Endpoint,
		Region:         c.S3Region,
		Bucket:         c.S3Bucket,
		AccessKey:      c.S3AccessKey,
		SecretKey:      c.S3SecretKey,
		UsePathStyle:   c.S3UsePathStyle,
		MaxObjectBytes: c.MaxUploadBytes,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	verifier, err := newVerifier(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if c.GeminiAPIKey == "" {
		logger.Warn(ctx, "no Gemini API key configured, summaries will use the fallback text")
	}
	model := ai.NewGemini(c.GeminiAPIKey, c.GeminiModel)

	api := httpapi.NewServer(httpapi.Deps{
		Catalog:        services.NewCatalogService(db, rm, store, c),
		Uploader:       services.NewUploadService(db, rm, store, c, logger),
		Summaries:      services.NewSummaryService(db, rm, store, model, c, logger),
		Billing:        services.NewBillingService(db, rm, c, logger),
		Health:         services.NewHealthService(db, rm, store),
		Verifier:       verifier,
		Log:            logger,
		CORSOrigins:    c.CORSOrigins,
		RequestTimeout: c.RequestTimeout,
		MaxUploadBytes: c.MaxUploadBytes,
		SummaryRate:    rate.Limit(c.SummaryRateLimit),
		SummaryBurst:   c.SummaryRateBurst,
	})

	return &App{config: c, logger: logger, db: db, handler: api.Handler()}, nil
}

// newVerifier prefers the provider's JWKS over the shared secret.
func newVerifier(ctx context.Context, c *config.Config) (auth.Verifier, error) {
	if c.JWKSURL != "" {
		v, err := auth.NewJWKSVerifier(ctx, c.JWKSURL, c.JWTIssuer)
		if err != nil {
			return nil, fmt.Errorf("jwks: %w", err)
		}
		return v, nil
	}
	if c.JWTSecret == "" {
		return nil, errors.New("no token verifier configured")
	}
	return auth.NewHMACVerifier([]byte(c.JWTSecret), c.JWTIssuer), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serveHTTP runs srv until ctx is done, then drains in-flight requests for
// at most shutdownTimeout.
func serveHTTP(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := serveHTTP(ctx, srv, app.config.ShutdownTimeout, app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
