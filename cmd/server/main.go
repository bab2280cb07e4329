package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/realstake/realstake-backend/internal/adapter/repository/memory"
	"github.com/realstake/realstake-backend/internal/adapter/repository/postgres"
	"github.com/realstake/realstake-backend/internal/adapter/web"
	"github.com/realstake/realstake-backend/internal/config"
	"github.com/realstake/realstake-backend/internal/domain"
	"github.com/realstake/realstake-backend/internal/usecase/location"
	"github.com/realstake/realstake-backend/internal/usecase/owner"
	"github.com/realstake/realstake-backend/internal/usecase/reporting"
	"github.com/realstake/realstake-backend/internal/usecase/trading"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	// 2. Repositories
	var (
		ownerRepo       domain.OwnerRepository
		locationRepo    domain.LocationRepository
		transactionRepo domain.TransactionRepository
		holdingRepo     domain.HoldingRepository
	)

	switch cfg.Storage {
	case "postgres":
		db, err := postgres.NewDB(cfg.ConnectionString())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		ownerRepo = postgres.NewOwnerRepository(db)
		locationRepo = postgres.NewLocationRepository(db)
		transactionRepo = postgres.NewTransactionRepository(db)
		holdingRepo = postgres.NewHoldingRepository(db)
		log.Info().Msg("Using postgres storage")

	default:
		store := memory.NewStore()
		ownerRepo = memory.NewOwnerRepository(store)
		locationRepo = memory.NewLocationRepository(store)
		transactionRepo = memory.NewTransactionRepository(store)
		holdingRepo = memory.NewHoldingRepository(store)
		log.Info().Msg("Using in-memory storage")
	}

	// 3. Services, sharing one ledger lock so every accounting operation
	// runs to completion before the next begins
	var ledger sync.Mutex
	ownerService := owner.NewService(&ledger, ownerRepo, transactionRepo, holdingRepo)
	locationService := location.NewService(&ledger, locationRepo, transactionRepo, holdingRepo)
	tradingService := trading.NewService(&ledger, ownerRepo, locationRepo, transactionRepo, holdingRepo)
	reportingService := reporting.NewService(&ledger, ownerRepo, locationRepo, transactionRepo, holdingRepo)

	// 4. HTTP server
	server := web.New(web.Config{
		Port:             cfg.Port,
		Log:              log,
		OwnerService:     ownerService,
		LocationService:  locationService,
		TradingService:   tradingService,
		ReportingService: reportingService,
	})

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to serve HTTP")
		}
	}()

	waitForShutdown(server, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *web.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
	log.Info().Msg("HTTP server stopped")
}
