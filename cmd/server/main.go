package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"slot-ledger/internal/cache"
	"slot-ledger/internal/config"
	"slot-ledger/internal/database"
	"slot-ledger/internal/events"
	"slot-ledger/internal/handler"
	"slot-ledger/internal/logger"
	"slot-ledger/internal/repository"
	"slot-ledger/internal/repository/memory"
	"slot-ledger/internal/repository/postgres"
	"slot-ledger/internal/service"
	"slot-ledger/internal/worker"

	"github.com/redis/go-redis/v9"

	_ "slot-ledger/docs"
)

// @title Slot Ledger API
// @version 1.0
// @description Tournament slot booking with atomic wallet debit
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(true, "info")
		boot.Fatal().Err(err).Msg("Failed to load config")
	}

	// Setup logger
	log := logger.New(cfg.Log.Pretty, cfg.Log.Level)

	// Root context to be canceled on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	var (
		tournamentRepo  repository.TournamentRepository
		accountRepo     repository.AccountRepository
		transactionRepo repository.TransactionRepository
		dbManager       repository.DBManager
	)

	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		memory.SeedDemo(store)
		tournamentRepo, accountRepo, transactionRepo, dbManager = store, store, store, store
		log.Warn().Msg("Using in-memory store, data will not persist")
	default:
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		dbPool, err := database.NewPool(dbCtx, cfg.Database)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer dbPool.Close()

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, dbPool, cfg.Database.MigrationsDir); err != nil {
				log.Fatal().Err(err).Msg("failed to apply migrations")
			}
			log.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Migrations applied")
		}

		tournamentRepo = postgres.NewTournamentRepository(dbPool)
		accountRepo = postgres.NewAccountRepository(dbPool)
		transactionRepo = postgres.NewTransactionRepository(dbPool)

		// Transaction manager used by services
		dbManager = postgres.NewTransactionManager(dbPool).WithLockTimeout(cfg.Booking.LockTimeout)
		log.Info().Str("host", cfg.Database.Host).Msg("Connected to PostgreSQL")
	}

	// Tournament list cache
	var tournamentCache cache.TournamentCache = cache.Noop{}
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis not reachable, list cache will miss until it is")
		}
		tournamentCache = cache.NewRedisCache(rdb, cfg.Redis.TTL)
		log.Info().Dur("ttl", cfg.Redis.TTL).Msg("Redis cache enabled")
	}

	// Booking events
	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, cfg.NATS.Token, "slot-ledger")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer nc.Drain()

		natsPublisher := events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix, log)
		publisher = natsPublisher
		log.Info().Str("subject", natsPublisher.Subject()).Msg("Publishing booking events")
	}

	// Services
	bookingService := service.NewBookingService(tournamentRepo, accountRepo, transactionRepo, dbManager, publisher, tournamentCache, cfg.Booking.UncappedSlots, log)
	tournamentService := service.NewTournamentService(tournamentRepo, tournamentCache, log)
	accountService := service.NewAccountService(accountRepo, transactionRepo, tournamentRepo, log)
	reaperService := service.NewReaperService(transactionRepo, dbManager, cfg.Booking.IntentStaleAfter, log)

	// Worker for stale booking intents
	reaperWorker, err := worker.NewReaperWorker(reaperService, cfg.Worker.ReaperInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create reaper worker")
	}
	if err := reaperWorker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reaper worker")
	}
	defer reaperWorker.Stop()

	// http handler
	h := handler.NewHandler(bookingService, tournamentService, accountService, log)
	router := h.SetupRoutes()

	// http server configuration
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("Server started")

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, starting graceful shutdown...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	} else {
		log.Info().Msg("HTTP server stopped gracefully")
	}

	log.Info().Msg("Shutdown complete")
}
