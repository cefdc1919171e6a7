// Package bootstrap provides dependency initialization for the kling command.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/maauso/kling-go"
	"github.com/maauso/kling-go/internal/config"
	"github.com/maauso/kling-go/internal/storage"
)

// Dependencies holds all initialized dependencies for the command line tool.
type Dependencies struct {
	Client  *kling.Client
	Storage storage.Storage
	Logger  *slog.Logger

	// Wait holds the poll options derived from configuration.
	Wait []kling.WaitOption
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	client, err := kling.NewClient(cfg.AccessKey, cfg.SecretKey,
		kling.WithBaseURL(cfg.BaseURL),
		kling.WithRequestTimeout(cfg.RequestTimeout),
		kling.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create Kling client: %w", err)
	}

	return &Dependencies{
		Client:  client,
		Storage: store,
		Logger:  logger,
		Wait: []kling.WaitOption{
			kling.WithPollInterval(cfg.PollInterval),
			kling.WithPollTimeout(cfg.PollTimeout),
		},
	}, nil
}

// Close releases the client's pooled connections.
func (d *Dependencies) Close() error {
	return d.Client.Close()
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		// Artifacts are staged under the output directory before upload.
		s3Store, err := storage.NewS3Storage(cfg.OutputDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("output_dir", cfg.OutputDir),
	)
	return localStore, nil
}
