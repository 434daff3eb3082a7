package services

import (
	"context"
	"fmt"
	"math"
)

type SimilarityScorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

type similarityScorer struct {
	embedder Embedder
}

func NewSimilarityScorer(embedder Embedder) SimilarityScorer {
	return &similarityScorer{embedder: embedder}
}

// Score implements SimilarityScorer. Both texts go out in one batch, blank ones
// included; whatever vectors come back are compared as is.
func (s *similarityScorer) Score(ctx context.Context, a, b string) (float64, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{a, b})
	if err != nil {
		return 0, stageErr(StageSimilarity, err)
	}
	if len(vectors) != 2 {
		return 0, stageErr(StageSimilarity, fmt.Errorf("expected 2 embeddings, got %d", len(vectors)))
	}

	return CosineSimilarity(vectors[0], vectors[1]), nil
}

// CosineSimilarity returns the cosine of the angle between a and b, clamped
// to [-1, 1]. Mismatched lengths and zero vectors give 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case math.IsNaN(sim):
		return 0
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	}
	return sim
}
