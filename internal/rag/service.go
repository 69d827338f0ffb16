// Package rag wires embedding, retrieval and generation into the
// question answering workflow: index documents into the vector store,
// then answer questions grounded in the closest matches.
package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/store"
)

// Service orchestrates the index and ask operations.
type Service struct {
	embedder  embedding.Embedder
	generator generation.Generator
	store     *store.Store
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the orchestrator over the given providers and store.
func NewService(embedder embedding.Embedder, generator generation.Generator, st *store.Store, opts ...Option) *Service {
	s := &Service{
		embedder:  embedder,
		generator: generator,
		store:     st,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index embeds the document text and stores it under the given id.
// An existing record with the same id is replaced.
func (s *Service) Index(ctx context.Context, id, text string) error {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed document %s: %w", id, err)
	}
	if err := s.store.Upsert(ctx, id, text, vector); err != nil {
		return fmt.Errorf("store document %s: %w", id, err)
	}
	s.logger.Debug("document indexed", zap.String("id", id), zap.Int("dimensions", len(vector)))
	return nil
}

// Ask answers the question from the closest indexed documents. A blank
// question or an empty store yields guidance rather than an error. When
// the generation provider fails, the retrieved context is returned
// verbatim under a fallback notice and the error is not propagated.
func (s *Service) Ask(ctx context.Context, question string, topK int) (string, error) {
	if strings.TrimSpace(question) == "" {
		return msgEmptyQuestion, nil
	}

	count := s.store.Count()
	if count == 0 {
		return msgNoData, nil
	}
	if topK < 1 {
		topK = 1
	}
	if topK > count {
		topK = count
	}

	queryVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	hits, err := s.store.Search(ctx, queryVector, topK)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if len(hits) == 0 {
		return msgNoData, nil
	}

	entries := buildEntries(hits)
	contextBlock := renderContext(entries)
	citations := renderCitations(hits)

	userPrompt := fmt.Sprintf("Context:\n%s\n\nSources:\n%s\n\nQuestion: %s", contextBlock, citations, question)
	answer, err := s.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("generation failed, returning retrieved context", zap.Error(err))
		return fmt.Sprintf("%s (%v). Here is the most relevant content found:\n\n%s", fallbackPrefix, err, contextBlock), nil
	}

	return fmt.Sprintf("Answer: %s\n\nSources:\n%s", answer, citations), nil
}
