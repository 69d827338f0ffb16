package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when the embedding provider has no credential
// configured. It is a configuration error and is never retried.
var ErrMissingAPIKey = errors.New("embedding provider: api key not configured")

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint. Any provider
// exposing the same API (OpenAI, SiliconFlow, Ollama, ...) works via BaseURL.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	cache  *Cache
}

// OpenAIConfig configures an OpenAIEmbedder.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	CacheSize int
}

// NewOpenAIEmbedder creates an embedder for the configured endpoint.
// Fails fast with ErrMissingAPIKey when no credential is configured.
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		cache:  NewCache(cacheSize),
	}, nil
}

// Embed returns the embedding for text, using the cache when available.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}

	vec := resp.Data[0].Embedding
	e.cache.Set(text, vec)
	return vec, nil
}
