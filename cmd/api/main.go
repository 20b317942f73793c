package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/Dev-MiMi/expensetracker/internal/account"
	accountStore "github.com/Dev-MiMi/expensetracker/internal/account/store"
	"github.com/Dev-MiMi/expensetracker/internal/auth"
	"github.com/Dev-MiMi/expensetracker/internal/budget"
	budgetStore "github.com/Dev-MiMi/expensetracker/internal/budget/store"
	"github.com/Dev-MiMi/expensetracker/internal/config"
	"github.com/Dev-MiMi/expensetracker/internal/database"
	"github.com/Dev-MiMi/expensetracker/internal/export"
	"github.com/Dev-MiMi/expensetracker/internal/goal"
	goalStore "github.com/Dev-MiMi/expensetracker/internal/goal/store"
	apiHttp "github.com/Dev-MiMi/expensetracker/internal/http"
	accountHandler "github.com/Dev-MiMi/expensetracker/internal/http/account"
	authHandler "github.com/Dev-MiMi/expensetracker/internal/http/auth"
	budgetHandler "github.com/Dev-MiMi/expensetracker/internal/http/budget"
	exportHandler "github.com/Dev-MiMi/expensetracker/internal/http/export"
	goalHandler "github.com/Dev-MiMi/expensetracker/internal/http/goal"
	importHandler "github.com/Dev-MiMi/expensetracker/internal/http/importcsv"
	matchingHandler "github.com/Dev-MiMi/expensetracker/internal/http/matching"
	recordHandler "github.com/Dev-MiMi/expensetracker/internal/http/record"
	"github.com/Dev-MiMi/expensetracker/internal/importer"
	"github.com/Dev-MiMi/expensetracker/internal/logging"
	"github.com/Dev-MiMi/expensetracker/internal/matching"
	matchingStore "github.com/Dev-MiMi/expensetracker/internal/matching/store"
	"github.com/Dev-MiMi/expensetracker/internal/record"
	recordStore "github.com/Dev-MiMi/expensetracker/internal/record/store"
	userStore "github.com/Dev-MiMi/expensetracker/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	var (
		authenticator   = auth.NewPasswordAuthenticator(userStore.New(db))
		accountService  = account.NewService(accountStore.New(db))
		recordService   = record.NewService(recordStore.New(db))
		budgetService   = budget.NewService(budgetStore.New(db), accountService)
		goalService     = goal.NewService(goalStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService(matchingService)
		exportService   = export.NewService(recordService)
	)

	handlers := apiHttp.Handlers{
		Auth:     authHandler.NewHandler(authenticator, jwtManager),
		Accounts: accountHandler.NewHandler(accountService),
		Records:  recordHandler.NewHandler(recordService),
		Budgets:  budgetHandler.NewHandler(budgetService),
		Goals:    goalHandler.NewHandler(goalService),
		Import:   importHandler.NewHandler(importService, recordService),
		Export:   exportHandler.NewHandler(exportService),
		Matching: matchingHandler.NewHandler(matchingService),
	}

	router := apiHttp.New(jwtManager, cfg.CORS.AllowedOrigins, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
