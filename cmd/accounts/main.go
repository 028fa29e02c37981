package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/rs/cors"

	cfg "github.com/finledger/commission-app/backend/config"
	"github.com/finledger/commission-app/backend/internal/handlers"
	"github.com/finledger/commission-app/backend/internal/usecases"
	"github.com/finledger/commission-app/backend/internal/usecases/repository"
	"github.com/finledger/commission-app/backend/internal/workers"
	"github.com/finledger/commission-app/backend/pkg/database"
)

// Server timeout constants.
const (
	readTimeoutSeconds     = 15
	writeTimeoutSeconds    = 15
	idleTimeoutSeconds     = 60
	shutdownTimeoutSeconds = 5
)

func main() {
	time.Local = time.UTC

	// Parse configuration
	config, err := cfg.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Setup logging
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if config.App.Debug {
		opts.Level = slog.LevelDebug
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	migrationsPath := "./migrations"
	if workDir, err := os.Getwd(); err == nil {
		if _, err := os.Stat(filepath.Join(workDir, "migrations")); !os.IsNotExist(err) {
			migrationsPath = filepath.Join(workDir, "migrations")
		} else if _, err := os.Stat(filepath.Join(workDir, "..", "migrations")); !os.IsNotExist(err) {
			migrationsPath = filepath.Join(workDir, "..", "migrations")
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	logger.Warn("Starting application with configuration",
		"debug", config.App.Debug,
		"environment", config.App.Environment,
		"server_port", config.HTTP.Port,
		"database_url", config.DB.DatabaseURL)

	// Connect to Database
	pg, err := database.New(config,
		database.MaxPoolSize(config.DB.PoolMax),
		database.ConnTimeout(config.DB.ConnectTimeout),
		database.HealthCheckPeriod(config.DB.HealthCheckPeriod),
		database.Isolation(pgx.ReadCommitted),
	)
	if err != nil {
		slog.Error("postgres connection failed", slog.String("error", err.Error()))
		return
	}
	defer pg.Close()

	// Run database migrations
	logger.Info("Running database migrations", "path", migrationsPath)
	if err = database.RunMigrations(logger, config.DB.DatabaseURL, migrationsPath); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		log.Fatal(err)
	}
	logger.Info("Database migrations completed successfully")

	// Create repositories
	usersRepository := repository.NewUsersRepository(logger, pg)
	ordersRepository := repository.NewOrdersRepository(logger, pg)
	transactionsRepository := repository.NewTransactionsRepository(logger, pg)
	withdrawalsRepository := repository.NewWithdrawalsRepository(logger, pg)
	bankAccountsRepository := repository.NewBankAccountsRepository(logger, pg)
	invitationsRepository := repository.NewInvitationsRepository(logger, pg)
	depositProofsRepository := repository.NewDepositProofsRepository(logger, pg)

	// Create usecases
	registrationService := usecases.NewRegistrationService(logger, usersRepository, invitationsRepository, pg.Transactor)
	accountService := usecases.NewAccountService(logger, usersRepository, bankAccountsRepository)
	orderService := usecases.NewOrderService(logger, ordersRepository)
	settlementService := usecases.NewSettlementService(logger, ordersRepository, transactionsRepository, usersRepository, pg.Transactor)
	withdrawalService := usecases.NewWithdrawalService(logger, usersRepository, ordersRepository, transactionsRepository, withdrawalsRepository, bankAccountsRepository, pg.Transactor)
	depositService := usecases.NewDepositService(logger, usersRepository, transactionsRepository, depositProofsRepository, pg.Transactor)
	transactionService := usecases.NewTransactionService(logger, transactionsRepository, ordersRepository)

	// Create handlers
	websocketManager := handlers.NewWebSocketManager(logger)
	httpHandler := handlers.NewHTTPHandler(
		logger,
		registrationService,
		accountService,
		orderService,
		settlementService,
		withdrawalService,
		depositService,
		transactionService,
		accountService,
	)
	wsHandler := handlers.NewWebSocketHandler(logger, websocketManager)

	// Start the ledger change feed worker
	ledgerFeed := workers.NewLedgerFeed(logger, pg.Pool, websocketManager)
	go ledgerFeed.Start(ctx)

	// Create router
	router := mux.NewRouter()

	// Register WebSocket routes before HTTP routes
	wsHandler.RegisterRoutes(router)
	httpHandler.RegisterRoutes(router)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Wrap router in CORS middleware
	handler := c.Handler(router)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + config.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  readTimeoutSeconds * time.Second,
		WriteTimeout: writeTimeoutSeconds * time.Second,
		IdleTimeout:  idleTimeoutSeconds * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "address", server.Addr)
		if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			log.Fatal(err)
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	cancel()

	// Give 5 seconds to complete current requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}

	logger.Info("Server exited properly")
}
