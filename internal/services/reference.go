package services

import (
	"context"
	"fmt"
	"strings"
)

// Reference document types stored in the vector collection.
const (
	DocTypeJobDescription = "job_description"
	DocTypeScoringGuide   = "scoring_guide"
)

// ReferenceLibrary finds stored reference material relevant to a query.
type ReferenceLibrary interface {
	Retrieve(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type referenceLibrary struct {
	store    QdrantService
	embedder Embedder
}

func NewReferenceLibrary(store QdrantService, embedder Embedder) ReferenceLibrary {
	return &referenceLibrary{
		store:    store,
		embedder: embedder,
	}
}

// Retrieve implements ReferenceLibrary. Results of every document type are
// considered.
func (r *referenceLibrary) Retrieve(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return nil, nil
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	results, err := r.store.SearchSimilar(ctx, vectors[0], "", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search reference material: %w", err)
	}
	return results, nil
}
