package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
		{"overflow clamps", []float32{math.MaxFloat32, math.MaxFloat32}, []float32{math.MaxFloat32, math.MaxFloat32}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CosineSimilarity(tc.a, tc.b)
			assert.InDelta(t, tc.want, got, 1e-6)
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestSimilarityScoreBatchesBothTexts(t *testing.T) {
	embedder := &fakeEmbedder{}
	scorer := NewSimilarityScorer(embedder)

	self, err := scorer.Score(context.Background(), "golang kubernetes", "golang kubernetes")
	require.NoError(t, err)
	cross, err := scorer.Score(context.Background(), "golang kubernetes", "watercolor painting")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, self, 1e-6)
	assert.GreaterOrEqual(t, self, cross)
	require.Len(t, embedder.batches, 2)
	assert.Len(t, embedder.batches[0], 2)
}

func TestSimilarityScoreSendsEmptyText(t *testing.T) {
	embedder := &fakeEmbedder{}
	scorer := NewSimilarityScorer(embedder)

	score, err := scorer.Score(context.Background(), "resume text", "")
	require.NoError(t, err)

	require.Len(t, embedder.batches, 1)
	assert.Equal(t, []string{"resume text", ""}, embedder.batches[0])
	assert.False(t, math.IsNaN(score))
	assert.False(t, math.IsInf(score, 0))
	assert.GreaterOrEqual(t, score, -1.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestSimilarityScoreWrapsErrors(t *testing.T) {
	scorer := NewSimilarityScorer(&fakeEmbedder{err: errUpstream})

	_, err := scorer.Score(context.Background(), "a", "b")
	require.ErrorIs(t, err, errUpstream)

	stage, _ := StageOf(err)
	assert.Equal(t, StageSimilarity, stage)
}
