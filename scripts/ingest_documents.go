package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const embedBatchSize = 32

type referenceDoc struct {
	Path    string
	DocType string
	Name    string
}

func main() {
	dir := flag.String("dir", "./reference_docs", "directory holding reference PDFs")
	chunkSize := flag.Int("chunk-size", 1000, "maximum chunk size in characters")
	overlap := flag.Int("overlap", 200, "characters carried over between chunks")
	flag.Parse()

	cfg := config.Load()

	zl, err := logger.New(false, true)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if !cfg.QdrantEnabled() {
		zl.Fatal("QDRANT_URL is not set, nothing to ingest into")
	}

	ctx := context.Background()

	apiKey, baseURL, model, embedModel := cfg.ProviderCredentials()
	provider, err := services.NewProvider(ctx, services.ProviderConfig{
		Name:       cfg.LLM.Provider,
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      model,
		EmbedModel: embedModel,
	}, zl)
	if err != nil {
		zl.Fatal("failed to initialize embedding provider", zap.Error(err))
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
		zl,
	)
	if err != nil {
		zl.Fatal("failed to initialize qdrant", zap.Error(err))
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		zl.Fatal("failed to initialize collection", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService(zl)
	chunker := services.NewTextChunker()

	documents := []referenceDoc{
		{
			Path:    filepath.Join(*dir, "backend_engineer_jd.pdf"),
			DocType: services.DocTypeJobDescription,
			Name:    "Job Description - Backend Engineer",
		},
		{
			Path:    filepath.Join(*dir, "data_scientist_jd.pdf"),
			DocType: services.DocTypeJobDescription,
			Name:    "Job Description - Data Scientist",
		},
		{
			Path:    filepath.Join(*dir, "resume_scoring_guide.pdf"),
			DocType: services.DocTypeScoringGuide,
			Name:    "Resume Scoring Guide",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		docLog := zl.With(zap.String("document", doc.Name), zap.String("type", doc.DocType))

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			docLog.Warn("file not found, skipping", zap.String("path", doc.Path))
			failCount++
			continue
		}

		content, err := pdfParser.ExtractTextWithMetaData(doc.Path)
		if err != nil {
			docLog.Error("failed to extract text", zap.Error(err))
			failCount++
			continue
		}

		chunks := chunker.ChunkText(services.CleanText(content.Text), *chunkSize, *overlap)
		docLog.Info("document chunked",
			zap.Int("pages", content.PageCount),
			zap.Int("characters", len(content.Text)),
			zap.Int("chunks", len(chunks)))

		docID := documentID(doc)
		if err := qdrantService.DeleteDocument(ctx, docID); err != nil {
			docLog.Error("failed to remove previous chunks", zap.Error(err))
			failCount++
			continue
		}

		stored, err := ingestChunks(ctx, provider, qdrantService, docID, doc.DocType, chunks)
		if err != nil {
			docLog.Error("ingestion stopped", zap.Int("stored", stored), zap.Error(err))
			failCount++
			continue
		}

		docLog.Info("document ingested", zap.Int("stored", stored))
		successCount++
	}

	zl.Info("ingestion summary", zap.Int("succeeded", successCount), zap.Int("failed", failCount))

	if failCount > 0 {
		os.Exit(1)
	}
}

func ingestChunks(ctx context.Context, embedder services.Embedder, store services.QdrantService, docID, docType string, chunks []string) (int, error) {
	stored := 0

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))

		vectors, err := embedder.EmbedTexts(ctx, chunks[start:end])
		if err != nil {
			return stored, fmt.Errorf("failed to embed chunks %d-%d: %w", start+1, end, err)
		}

		for i, vector := range vectors {
			idx := start + i
			if err := store.UpsertDocument(ctx, docID, idx, docType, chunks[idx], vector); err != nil {
				return stored, fmt.Errorf("failed to store chunk %d: %w", idx+1, err)
			}
			stored++
		}
	}

	return stored, nil
}

func documentID(doc referenceDoc) string {
	base := strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	return fmt.Sprintf("%s_%s", doc.DocType, strings.ToLower(base))
}
