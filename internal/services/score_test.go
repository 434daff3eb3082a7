package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScores(t *testing.T) {
	assert.Equal(t, []float64{3, 4.5}, ExtractScores("3/5 great, 4.5/5 good"))
	assert.Empty(t, ExtractScores("no scores here"))
}

func TestAggregateScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"no scores", "Strong resume overall.", 0},
		{"two scores", "3/5 great, 4.5/5 good", 0.75},
		{"all perfect", "✅ 5/5 skills\n✅ 5/5 experience", 1},
		{"single", "⚠ 2/5 formatting", 0.4},
		{"out of fifty reads as out of five", "Experience: 10/50", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, AggregateScore(tc.text), 1e-9)
		})
	}
}

func TestExtractScoresMatchesInsideLongerDenominator(t *testing.T) {
	assert.Equal(t, []float64{10}, ExtractScores("10/50"))
	assert.Greater(t, AggregateScore("Overall 10/50"), 1.0)
}
