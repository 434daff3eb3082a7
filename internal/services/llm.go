package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LLMService is the generative model used for skills, reports and answers.
// Each call is a single user message; nothing is retained between calls.
type LLMService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Embedder turns a batch of texts into fixed-dimension vectors, one per input
// and in the same order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// CallPolicy controls how a provider issues generative calls.
type CallPolicy struct {
	MaxAttempts int
	Timeout     time.Duration
	Temperature float32
}

func (p CallPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// generateWithPolicy runs call up to policy.MaxAttempts times. Each attempt
// gets its own timeout when one is configured.
func generateWithPolicy(ctx context.Context, policy CallPolicy, log *zap.Logger, call func(ctx context.Context) (string, error)) (string, error) {
	attempts := policy.attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx := ctx
		cancel := func() {}
		if policy.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
		}

		result, err := call(callCtx)
		cancel()
		if err == nil {
			return result, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < attempts {
			log.Warn("generation attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
				zap.Error(err))
		}
	}

	if attempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
