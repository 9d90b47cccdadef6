// Package web serves the conservation hub JSON and calendar API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
	"github.com/wildlifewatch/conservation-hub/pkg/security"
)

const shutdownTimeout = 5 * time.Second

// Cache is the dataset cache behind the API
type Cache interface {
	services.DatasetSource
	Invalidate()
	LoadedAt() (time.Time, bool)
}

// Dependencies wires the server to the rest of the application
type Dependencies struct {
	Cache     Cache
	Localizer services.Localizer
	Tracker   services.ProgressTracker
	Columns   services.ColumnSource
	Now       func() time.Time
	Logger    *zap.Logger
}

type Server struct {
	cache     Cache
	localizer services.Localizer
	tracker   services.ProgressTracker
	columns   services.ColumnSource
	now       func() time.Time
	logger    *zap.Logger
}

func NewServer(deps Dependencies) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Server{
		cache:     deps.Cache,
		localizer: deps.Localizer,
		tracker:   deps.Tracker,
		columns:   deps.Columns,
		now:       deps.Now,
		logger:    deps.Logger,
	}
}

// Routes returns the API handler wrapped in logging and security headers
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.Health)

	mux.HandleFunc("GET /api/locales/{locale}/organizations", s.ListOrganizations)
	mux.HandleFunc("GET /api/locales/{locale}/organizations/{id}", s.GetOrganization)
	mux.HandleFunc("GET /api/locales/{locale}/organizations/{id}/reminder.ics", s.OrganizationReminder)
	mux.HandleFunc("GET /api/locales/{locale}/calendar.ics", s.SiteCalendar)
	mux.HandleFunc("GET /api/locales/{locale}/highlights", s.ListHighlights)
	mux.HandleFunc("GET /api/locales/{locale}/achievements", s.ListAchievements)

	mux.HandleFunc("POST /api/visitors", s.CreateVisitor)
	mux.HandleFunc("GET /api/visitors/{visitor}/progress", s.VisitorProgress)
	mux.HandleFunc("POST /api/visitors/{visitor}/support", s.ConfirmSupport)
	mux.HandleFunc("POST /api/visitors/{visitor}/clicks", s.RecordClick)
	mux.HandleFunc("POST /api/visitors/{visitor}/watering", s.RecordWatering)
	mux.HandleFunc("POST /api/visitors/{visitor}/visits", s.RecordVisit)

	mux.HandleFunc("POST /api/cache/invalidate", s.InvalidateCache)
	mux.HandleFunc("GET /api/debug/columns", s.DebugColumns)

	return RequestLogger(s.logger)(security.Headers(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-serverError:
		return fmt.Errorf("failed to start server: %w", err)
	}
}
