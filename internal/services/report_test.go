package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReferences struct {
	results []SearchResult
	err     error
	queries []string
}

func (f *fakeReferences) Retrieve(_ context.Context, query string, _ int) ([]SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func TestReportGeneratorWithoutReferences(t *testing.T) {
	llm := &fakeLLM{reply: func(string) (string, error) { return "✅ 4/5 skills", nil }}
	gen := NewReportGenerator(llm, NewPromptBuilder(), nil, 3, zap.NewNop())

	report, err := gen.Generate(context.Background(), "resume", "")
	require.NoError(t, err)

	assert.Equal(t, "✅ 4/5 skills", report)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], DefaultJobDescription)
	assert.NotContains(t, llm.prompts[0], "# Reference material:")
}

func TestReportGeneratorIncludesReferences(t *testing.T) {
	llm := &fakeLLM{reply: func(string) (string, error) { return "3/5", nil }}
	refs := &fakeReferences{results: []SearchResult{{Text: "Score leadership highly", Score: 0.8}}}
	gen := NewReportGenerator(llm, NewPromptBuilder(), refs, 3, zap.NewNop())

	_, err := gen.Generate(context.Background(), "resume", "Engineering Manager")
	require.NoError(t, err)

	require.Len(t, refs.queries, 1)
	assert.Contains(t, refs.queries[0], "Engineering Manager")
	assert.Contains(t, llm.prompts[0], "Score leadership highly")
}

func TestReportGeneratorIgnoresRetrievalFailure(t *testing.T) {
	llm := &fakeLLM{reply: func(string) (string, error) { return "2/5", nil }}
	gen := NewReportGenerator(llm, NewPromptBuilder(), &fakeReferences{err: errUpstream}, 3, zap.NewNop())

	report, err := gen.Generate(context.Background(), "resume", "jd")
	require.NoError(t, err)

	assert.Equal(t, "2/5", report)
	assert.NotContains(t, llm.prompts[0], "# Reference material:")
}

func TestReportGeneratorWrapsLLMErrors(t *testing.T) {
	llm := &fakeLLM{reply: func(string) (string, error) { return "", errUpstream }}
	gen := NewReportGenerator(llm, NewPromptBuilder(), nil, 3, zap.NewNop())

	_, err := gen.Generate(context.Background(), "resume", "jd")
	require.ErrorIs(t, err, errUpstream)

	stage, _ := StageOf(err)
	assert.Equal(t, StageReport, stage)
}

type fakeQdrant struct {
	results    []SearchResult
	lastVector []float32
	lastType   string
	lastLimit  int
}

func (f *fakeQdrant) InitCollection(context.Context) error { return nil }

func (f *fakeQdrant) UpsertDocument(context.Context, string, int, string, string, []float32) error {
	return nil
}

func (f *fakeQdrant) SearchSimilar(_ context.Context, vector []float32, docType string, limit int) ([]SearchResult, error) {
	f.lastVector = vector
	f.lastType = docType
	f.lastLimit = limit
	return f.results, nil
}

func (f *fakeQdrant) DeleteDocument(context.Context, string) error { return nil }

func TestReferenceLibraryRetrieve(t *testing.T) {
	store := &fakeQdrant{results: []SearchResult{{ID: "scoring_guide_rubric", Text: "rubric"}}}
	lib := NewReferenceLibrary(store, &fakeEmbedder{})

	results, err := lib.Retrieve(context.Background(), "abc", 2)
	require.NoError(t, err)

	assert.Equal(t, store.results, results)
	assert.Equal(t, letterVector("abc"), store.lastVector)
	assert.Empty(t, store.lastType)
	assert.Equal(t, 2, store.lastLimit)
}

func TestReferenceLibraryBlankQuery(t *testing.T) {
	embedder := &fakeEmbedder{}
	lib := NewReferenceLibrary(&fakeQdrant{}, embedder)

	results, err := lib.Retrieve(context.Background(), "  ", 3)
	require.NoError(t, err)

	assert.Nil(t, results)
	assert.Empty(t, embedder.batches)
}
