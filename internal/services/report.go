package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ReportGenerator produces the free-text review of a resume against a job
// description. The report is expected to carry "<n>/5" scores.
type ReportGenerator interface {
	Generate(ctx context.Context, resume, jobDescription string) (string, error)
}

type reportGenerator struct {
	llm        LLMService
	prompts    *PromptBuilder
	references ReferenceLibrary
	topK       int
	log        *zap.Logger
}

// NewReportGenerator creates a generator. references may be nil, in which
// case prompts carry no reference material.
func NewReportGenerator(llm LLMService, prompts *PromptBuilder, references ReferenceLibrary, topK int, log *zap.Logger) ReportGenerator {
	return &reportGenerator{
		llm:        llm,
		prompts:    prompts,
		references: references,
		topK:       topK,
		log:        log.Named("report"),
	}
}

// Generate implements ReportGenerator.
func (g *reportGenerator) Generate(ctx context.Context, resume, jobDescription string) (string, error) {
	reference := g.retrieveContext(ctx, jobDescription)
	prompt := g.prompts.BuildReportPrompt(resume, jobDescription, reference)

	report, err := g.llm.GenerateText(ctx, prompt)
	if err != nil {
		return "", stageErr(StageReport, fmt.Errorf("failed to generate report: %w", err))
	}

	g.log.Debug("report generated",
		zap.String("model", g.llm.Model()),
		zap.Int("report_length", len(report)),
		zap.Bool("with_reference", reference != ""))

	return report, nil
}

// retrieveContext returns formatted reference material, or "" when none is
// configured or retrieval fails.
func (g *reportGenerator) retrieveContext(ctx context.Context, jobDescription string) string {
	if g.references == nil {
		return ""
	}

	results, err := g.references.Retrieve(ctx, g.prompts.BuildRetrievalQuery(jobDescription), g.topK)
	if err != nil {
		g.log.Warn("reference retrieval failed, continuing without it", zap.Error(err))
		return ""
	}
	return FormatRAGContext(results)
}
