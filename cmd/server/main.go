package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/config"
	"github.com/chairulridjaal/invoice-chain-agent/internal/explain"
	httpserver "github.com/chairulridjaal/invoice-chain-agent/internal/interfaces/http"
	"github.com/chairulridjaal/invoice-chain-agent/internal/ledger"
	"github.com/chairulridjaal/invoice-chain-agent/internal/refdata"
	"github.com/chairulridjaal/invoice-chain-agent/internal/service"
	"github.com/chairulridjaal/invoice-chain-agent/internal/validation"
	"github.com/chairulridjaal/invoice-chain-agent/pkg/database"
	"github.com/chairulridjaal/invoice-chain-agent/pkg/utils"
)

func main() {
	// .env is optional; environment variables win either way
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Invoice Chain Agent",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	refStore, err := refdata.NewStore(refdata.NewFileProvider(cfg.Reference.Path, logger), logger)
	if err != nil {
		logger.Fatal("Failed to load reference data", zap.Error(err))
	}

	pipeline := validation.NewPipeline(validation.Config{
		FraudKeywords: cfg.Validation.FraudKeywords,
	}, logger)

	explainer := explain.NewGenerator(explain.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Timeout:     cfg.OpenAI.Timeout,
	}, logger)

	invoiceLedger := ledger.NewSQLiteLedger(db.DB, logger)

	svc := service.NewInvoiceService(pipeline, refStore, explainer, invoiceLedger, logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, svc, utils.NewKVLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
