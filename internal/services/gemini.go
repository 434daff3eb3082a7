package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/logger"
)

const similarityTaskType = "SEMANTIC_SIMILARITY"

// geminiModels is the subset of genai.Models used here.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type GeminiService struct {
	models     geminiModels
	modelName  string
	embedModel string
	policy     CallPolicy
	log        *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model, embedModel string, policy CallPolicy, log *zap.Logger) (*GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		models:     client.Models,
		modelName:  model,
		embedModel: embedModel,
		policy:     policy,
		log:        log.Named("gemini"),
	}, nil
}

func (g *GeminiService) Model() string {
	return g.modelName
}

// GenerateText implements LLMService.
func (g *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return generateWithPolicy(ctx, g.policy, g.log, func(ctx context.Context) (string, error) {
		return g.generateOnce(ctx, prompt)
	})
}

func (g *GeminiService) generateOnce(ctx context.Context, prompt string) (string, error) {
	temperature := g.policy.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
		// first candidate with content wins
		if builder.Len() > 0 {
			break
		}
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text content in response")
	}

	g.log.Debug("gemini response received",
		zap.Int("chars", len(text)),
		zap.String("preview", logger.TruncateForLog(text, 120)))

	return text, nil
}

// EmbedTexts implements Embedder with a single batch request.
func (g *GeminiService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	result, err := g.models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{
		TaskType: similarityTaskType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding result size mismatch: want %d", len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		if embedding == nil {
			return nil, fmt.Errorf("embedding %d missing", i)
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}
