package app

import (
	"context"
	"fmt"

	"github.com/maruv/hatespeech-detector-go/internal/analyzer"
	"github.com/maruv/hatespeech-detector-go/internal/classifier"
	"github.com/maruv/hatespeech-detector-go/internal/config"
	"github.com/maruv/hatespeech-detector-go/internal/server"
	"github.com/maruv/hatespeech-detector-go/internal/service/cache"
	"github.com/maruv/hatespeech-detector-go/internal/service/youtube"
	"go.uber.org/zap"
)

// Container bundles the assembled services. Classifier and source-client
// handles are built exactly once here and injected by reference; nothing
// reloads mid-request.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server

	closers []func()
}

// Close tears down services in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all services. Classifier artifact failures abort startup:
// a process without models is not worth running, degraded-source status is
// reported at the HTTP layer instead.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	linear, err := classifier.NewLinearClassifier(
		cfg.Models.LinearModelPath,
		cfg.Models.VectorizerPath,
		cfg.Models.Threshold,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load linear classifier: %w", err)
	}

	transformer, err := classifier.NewTransformerClassifier(
		cfg.Models.TokenizerPath,
		cfg.Models.TransformerModelPath,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load transformer classifier: %w", err)
	}

	var cacheSvc *cache.CacheService
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	} else {
		logger.Info("Redis disabled, running without cache")
	}

	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, cacheSvc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	analysisSvc := analyzer.New(ytClient, linear, logger)

	srv := server.New(linear, transformer, analysisSvc, ytClient, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Server:  srv,
		closers: closers,
	}, nil
}
