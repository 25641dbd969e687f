package main

import (
	"fmt"

	"github.com/expenseai/go-expense-sync/internal/adapter"
	"github.com/expenseai/go-expense-sync/internal/auth"
	"github.com/expenseai/go-expense-sync/internal/client"
	"github.com/expenseai/go-expense-sync/internal/config"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/internal/service"
	"github.com/expenseai/go-expense-sync/internal/store"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("expense-sync-client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize local storage")
	}
	defer func() { _ = storages.DB.Close() }()

	tokens := auth.NewFileTokenProvider(cfg.Auth.TokenPath)

	services := service.NewClientServices(storages, serverAdapter, tokens, log)

	app := client.NewApp(services, cfg.Workers, log)
	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client terminated with error")
	}
}

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
