package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docuvet/internal/config"
	"docuvet/internal/logger"
	"docuvet/internal/service"
	"docuvet/internal/storage"
	"docuvet/internal/transport"
	"docuvet/internal/validator"
)

// NewServeCommand creates the serve subcommand running the HTTP validation
// service.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation service",
		Long: `Serve exposes document validation over HTTP. Documents are addressed by
URL: http(s):// sources are fetched directly, azblob://container/blob
sources are read from the configured Azure storage account.`,
		RunE: runServe,
	}

	cmd.Flags().StringP("config", "c", "", "Path to YAML configuration file (optional)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	httpFetcher := storage.NewHTTPDocumentFetcher(cfg.FetchTimeout, cfg.MaxFileSize)
	fetchers := map[string]storage.DocumentFetcher{
		"http":  httpFetcher,
		"https": httpFetcher,
	}
	if cfg.AzureStorageAccount != "" && cfg.AzureStorageKey != "" {
		blobFetcher, err := storage.NewAzureBlobFetcher(cfg.AzureStorageAccount, cfg.AzureStorageKey, cfg.MaxFileSize)
		if err != nil {
			return err
		}
		fetchers["azblob"] = blobFetcher
	}

	svc := service.NewValidationService(fetchers, validator.NewFactory(cfg))
	handler := transport.NewHandler(svc, cfg)

	server := &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"address": cfg.ServerAddress(),
			"timeout": cfg.RequestTimeout,
		}).Info("Starting HTTP server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("Server exited")
	return nil
}
