package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnomegl/gitcards/internal/models"
	gh "github.com/google/go-github/v57/github"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Cards supplies the data behind each card. *service.Orchestrator satisfies it.
type Cards interface {
	Stats(ctx context.Context, now time.Time) (*models.UserStats, error)
	Languages(ctx context.Context) ([]models.LanguageStat, error)
	Streak(ctx context.Context, today time.Time) (models.StreakResult, error)
}

type HealthChecker interface {
	RateLimits(ctx context.Context) (*gh.RateLimits, error)
}

type Options struct {
	Addr         string
	CacheSeconds int
	Theme        string
	Location     *time.Location
	Metrics      bool
	// Unconfigured is served as a 500 error card on every card route when set.
	Unconfigured string
	Now          func() time.Time
	Logger       *slog.Logger
}

type Server struct {
	cards  Cards
	health HealthChecker
	opts   Options
	logger *slog.Logger
	server *http.Server
}

func New(cards Cards, health HealthChecker, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.CacheSeconds <= 0 {
		opts.CacheSeconds = 3600
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cards:  cards,
		health: health,
		opts:   opts,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.cardHandler("stats", s.renderStats))
	mux.HandleFunc("/languages", s.cardHandler("languages", s.renderLanguages))
	mux.HandleFunc("/streak", s.cardHandler("streak", s.renderStreak))
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.opts.Metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.HandleFunc("/", s.handleNotFound)

	return s.withRequestLog(mux)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("card server listening", "addr", s.opts.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("card server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("card server shutting down")
		return s.Stop()
	}
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// today is the current calendar day in the configured location.
func (s *Server) today() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

type healthStatus struct {
	Status           string `json:"status"`
	GraphQLRemaining *int   `json:"graphql_remaining,omitempty"`
	CoreRemaining    *int   `json:"core_remaining,omitempty"`
	Error            string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{Status: "up"}
	code := http.StatusOK

	if s.health != nil {
		limits, err := s.health.RateLimits(r.Context())
		switch {
		case err != nil:
			status.Status = "degraded"
			status.Error = err.Error()
			code = http.StatusServiceUnavailable
		default:
			if limits.GraphQL != nil {
				status.GraphQLRemaining = &limits.GraphQL.Remaining
			}
			if limits.Core != nil {
				status.CoreRemaining = &limits.Core.Remaining
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("error writing health status", "error", err)
	}
}
