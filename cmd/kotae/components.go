package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/ingest"
	"github.com/hyperjump/kotae/internal/rag"
	"github.com/hyperjump/kotae/internal/store"
)

// Components holds initialized services.
type Components struct {
	Store     *store.Store
	Embedder  embedding.Embedder
	Generator generation.Generator
	Service   *rag.Service
	Ingestor  *ingest.Ingestor
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	storeOpts := []store.Option{}
	if debug && logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(logger))
	}
	st := store.New(cfg.Store.Path, storeOpts...)

	var embedder embedding.Embedder
	switch cfg.Embedding.Provider {
	case "mock":
		embedder = embedding.NewMockEmbedder(0)
	default:
		openaiEmbedder, err := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			CacheSize: cfg.Embedding.CacheSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize embedder: %w", err)
		}
		embedder = openaiEmbedder
	}

	generator, err := generation.NewOpenAIGenerator(generation.OpenAIConfig{
		APIKey:      cfg.Generation.APIKey,
		Model:       cfg.Generation.Model,
		BaseURL:     cfg.Generation.BaseURL,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	svcOpts := []rag.Option{}
	if debug && logger != nil {
		svcOpts = append(svcOpts, rag.WithLogger(logger))
	}
	svc := rag.NewService(embedder, generator, st, svcOpts...)

	ingOpts := []ingest.Option{}
	if debug && logger != nil {
		ingOpts = append(ingOpts, ingest.WithLogger(logger))
	}
	ing := ingest.NewIngestor(svc, ingOpts...)

	return &Components{
		Store:     st,
		Embedder:  embedder,
		Generator: generator,
		Service:   svc,
		Ingestor:  ing,
	}, nil
}
