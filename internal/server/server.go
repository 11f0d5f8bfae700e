// Package server assembles the HTTP surface of the booking application:
// identity routes, the hotel catalog, booking history and checkout.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stayfinder/stayfinder/internal/auth"
	"github.com/stayfinder/stayfinder/internal/auth/middleware"
	"github.com/stayfinder/stayfinder/internal/bookings"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stayfinder/stayfinder/internal/hotels"
	"github.com/stayfinder/stayfinder/internal/logger"
	"github.com/stayfinder/stayfinder/internal/utils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP server for the booking application.
type Server struct {
	config   *config.Config
	auth     *auth.Service
	hotels   *hotels.Handler
	bookings *bookings.Handler
}

// NewServer creates a new server instance with the provided configuration
// and handlers.
func NewServer(cfg *config.Config, authService *auth.Service, hotelHandler *hotels.Handler, bookingHandler *bookings.Handler) *Server {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	return &Server{
		config:   cfg,
		auth:     authService,
		hotels:   hotelHandler,
		bookings: bookingHandler,
	}
}

// Handler assembles the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.auth.RegisterRoutes(mux)
	s.hotels.RegisterRoutes(mux)
	s.bookings.RegisterRoutes(mux, middleware.RequireSession(s.auth.Sessions()))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, map[string]string{"status": "ok"})
	})

	// Failed logins land here; the query parameters are purely presentational.
	mux.HandleFunc("GET /error", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		utils.WriteJSON(w, map[string]string{
			"error":             q.Get("error"),
			"error_description": q.Get("error_description"),
		})
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, map[string]string{
			"service": "stayfinder",
			"version": config.GetVersionInfo(),
		})
	})

	return LoggingMiddleware(CORSMiddleware(s.config.OAuth.BaseURL)(mux))
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server", zap.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// Module provides the HTTP server dependencies
var Module = fx.Module("server",
	fx.Provide(
		NewServer,
	),
)
