package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
)

type chatCompletions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

type embeddingsAPI interface {
	New(ctx context.Context, body openai.EmbeddingNewParams, opts ...option.RequestOption) (*openai.CreateEmbeddingResponse, error)
}

// OpenAIService talks to any OpenAI-compatible endpoint (OpenAI, Groq, a
// local gateway) for chat completions and embeddings.
type OpenAIService struct {
	chat       chatCompletions
	embeddings embeddingsAPI
	model      string
	embedModel string
	policy     CallPolicy
	log        *zap.Logger
}

func NewOpenAIService(apiKey, baseURL, model, embedModel string, policy CallPolicy, log *zap.Logger) (*OpenAIService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	client := openai.NewClient(clientOptions(apiKey, baseURL)...)

	return &OpenAIService{
		chat:       &client.Chat.Completions,
		embeddings: &client.Embeddings,
		model:      model,
		embedModel: embedModel,
		policy:     policy,
		log:        log.Named("openai"),
	}, nil
}

func clientOptions(apiKey, baseURL string) []option.RequestOption {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return opts
}

func (s *OpenAIService) Model() string {
	return s.model
}

// GenerateText implements LLMService.
func (s *OpenAIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return generateWithPolicy(ctx, s.policy, s.log, func(ctx context.Context) (string, error) {
		completion, err := s.chat.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model:       s.model,
			Temperature: openai.Float(float64(s.policy.Temperature)),
		})
		if err != nil {
			return "", fmt.Errorf("failed to generate text: %w", err)
		}

		if completion == nil || len(completion.Choices) == 0 {
			return "", errors.New("no response from model")
		}

		content := completion.Choices[0].Message.Content
		if strings.TrimSpace(content) == "" {
			return "", errors.New("no text content in response")
		}

		s.log.Debug("completion received",
			zap.Int("chars", len(content)),
			zap.String("preview", logger.TruncateForLog(content, 120)))

		return content, nil
	})
}

// EmbedTexts implements Embedder.
func (s *OpenAIService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := s.embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: s.embedModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if resp == nil || len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding result size mismatch: want %d", len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || int(data.Index) >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}
		vector := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vector[j] = float32(v)
		}
		vectors[data.Index] = vector
	}

	return vectors, nil
}
