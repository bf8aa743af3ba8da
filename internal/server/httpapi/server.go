// Package httpapi exposes the GophDrive services as a JSON API over chi.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/auth"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/services"
)

type Catalog interface {
	List(ctx context.Context, userID string, limit int) ([]catalog.FileRecord, error)
	Query(ctx context.Context, userID string, q catalog.Query) (*services.QueryResult, error)
	Get(ctx context.Context, userID, id string) (*catalog.FileRecord, error)
	SignedURL(ctx context.Context, userID, id string) (*services.SignedURL, error)
	Stats(ctx context.Context, userID string) (*services.StorageStats, error)
}

type Uploader interface {
	Upload(ctx context.Context, userID string, files []services.UploadFile) ([]services.UploadResult, error)
}

type Summaries interface {
	Generate(ctx context.Context, userID string, req services.SummaryRequest) (string, error)
}

type Billing interface {
	Plans() []models.Plan
	Subscription(ctx context.Context, userID string) (*models.Subscription, error)
	Checkout(ctx context.Context, userID string, plan models.PlanID) (*models.CheckoutIntent, error)
	Complete(ctx context.Context, userID, paymentID string, plan models.PlanID) (*models.Subscription, error)
}

type Readiness interface {
	Ready(ctx context.Context) ([]services.Check, bool)
}

// Deps is everything the router needs. Zero SummaryRate disables the
// summary limiter.
type Deps struct {
	Catalog   Catalog
	Uploader  Uploader
	Summaries Summaries
	Billing   Billing
	Health    Readiness
	Verifier  auth.Verifier
	Log       logging.Logger

	CORSOrigins    []string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	SummaryRate    rate.Limit
	SummaryBurst   int
}

type Server struct {
	Deps
	limiter *userLimiter
}

func NewServer(d Deps) *Server {
	s := &Server{Deps: d}
	if d.SummaryRate > 0 {
		s.limiter = newUserLimiter(d.SummaryRate, max(d.SummaryBurst, 1))
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Log))
	r.Use(middleware.Recoverer)
	r.Use(metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health/live", s.live)
	r.Get("/health/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.RequestTimeout))
		}
		r.Use(bearerAuth(s.Verifier, s.Log))

		r.Get("/me", s.me)
		r.Route("/files", func(r chi.Router) {
			r.Get("/", s.listFiles)
			r.Post("/", s.uploadFiles)
			r.Get("/stats", s.stats)
			r.Get("/{id}", s.getFile)
			r.Get("/{id}/url", s.signedURL)
		})
		r.With(s.rateLimited).Post("/generate-summary", s.generateSummary)
		r.Route("/billing", func(r chi.Router) {
			r.Get("/plans", s.plans)
			r.Get("/subscription", s.subscription)
			r.Post("/checkout", s.checkout)
			r.Post("/complete", s.complete)
		})
	})

	return r
}
