package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider is a backend that both generates text and embeds it.
type Provider interface {
	LLMService
	Embedder
}

type ProviderConfig struct {
	Name       string
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	Policy     CallPolicy
}

// NewProvider selects the backend named by cfg.Name ("gemini" or "openai").
func NewProvider(ctx context.Context, cfg ProviderConfig, log *zap.Logger) (Provider, error) {
	switch cfg.Name {
	case "gemini":
		svc, err := NewGeminiService(ctx, cfg.APIKey, cfg.Model, cfg.EmbedModel, cfg.Policy, log)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case "openai":
		svc, err := NewOpenAIService(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.EmbedModel, cfg.Policy, log)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Name)
	}
}
