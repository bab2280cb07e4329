// Package web exposes the accounting services over HTTP. Every operation
// takes primitive form or query arguments and answers with a plain-text
// body; failures are reported as a body starting with "Error. ".
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/realstake/realstake-backend/internal/usecase/location"
	"github.com/realstake/realstake-backend/internal/usecase/owner"
	"github.com/realstake/realstake-backend/internal/usecase/reporting"
	"github.com/realstake/realstake-backend/internal/usecase/trading"
)

// Config holds server configuration
type Config struct {
	Port             int
	Log              zerolog.Logger
	OwnerService     *owner.Service
	LocationService  *location.Service
	TradingService   *trading.Service
	ReportingService *reporting.Service
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	owners    *owner.Service
	locations *location.Service
	trading   *trading.Service
	reports   *reporting.Service
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		owners:    cfg.OwnerService,
		locations: cfg.LocationService,
		trading:   cfg.TradingService,
		reports:   cfg.ReportingService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/owners", func(r chi.Router) {
			r.Post("/", s.handleCreateOwner)
			r.Post("/topup", s.handleTopUpCash)
			r.Post("/withdraw", s.handleWithdrawCash)
			r.Get("/", s.handleListOwners)
			r.Get("/{name}", s.handleOwnerDetails)
			r.Delete("/{name}", s.handleDeleteOwner)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Post("/", s.handleCreateLocation)
			r.Post("/availability", s.handleSetAvailability)
			r.Get("/", s.handleListLocations)
			r.Get("/{name}", s.handleLocationDetails)
			r.Delete("/{name}", s.handleDeleteLocation)
		})

		r.Route("/trades", func(r chi.Router) {
			r.Post("/buy", s.handleBuyLocation)
			r.Post("/sell", s.handleSellLocation)
		})

		r.Route("/holdings", func(r chi.Router) {
			r.Get("/", s.handleListHoldings)
			r.Post("/ownership", s.handleSetOwnership)
			r.Get("/search", s.handleHoldingsSearch)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Get("/search", s.handleTransactionsSearch)
			r.Delete("/", s.handleDeleteTransaction)
		})
	})
}

// loggingMiddleware logs each request with duration and status
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
