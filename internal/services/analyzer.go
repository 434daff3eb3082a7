package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type AnalyzeInput struct {
	FileName       string
	Data           []byte
	JobDescription string
}

// VoiceAnswer is the outcome of a spoken question. Question is nil when no
// speech was detected.
type VoiceAnswer struct {
	Transcript Transcript
	Question   *models.Question
}

type AnalyzerService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*models.Analysis, error)
	Ask(ctx context.Context, analysisID uuid.UUID, question string, source models.QuestionSource) (*models.Question, error)
	AskByVoice(ctx context.Context, analysisID uuid.UUID, rec Recorder) (*VoiceAnswer, error)
	GetAnalysis(ctx context.Context, analysisID uuid.UUID) (*models.Analysis, error)
	ListQuestions(ctx context.Context, analysisID uuid.UUID) ([]models.Question, error)
}

// AnalyzerDeps groups the collaborators of the analyzer. Voice may be nil
// when no speech-to-text backend is configured.
type AnalyzerDeps struct {
	Parser       PDFParserService
	Skills       SkillExtractor
	Similarity   SimilarityScorer
	Reports      ReportGenerator
	Voice        VoiceTranscriber
	LLM          LLMService
	Prompts      *PromptBuilder
	AnalysisRepo repositories.AnalysisRepository
	QuestionRepo repositories.QuestionRepository
}

type analyzerService struct {
	deps AnalyzerDeps
	log  *zap.Logger
}

func NewAnalyzerService(deps AnalyzerDeps, log *zap.Logger) AnalyzerService {
	return &analyzerService{
		deps: deps,
		log:  log.Named("analyzer"),
	}
}

// Analyze implements AnalyzerService. Steps run in order and the first
// failure aborts the request; nothing is persisted for a failed analysis.
func (s *analyzerService) Analyze(ctx context.Context, input AnalyzeInput) (*models.Analysis, error) {
	log := s.log.With(zap.String("file", input.FileName))

	extraction := s.deps.Parser.Extract(input.Data)
	if !extraction.OK() {
		log.Warn("resume extraction failed", zap.Error(extraction.Err))
		return nil, stageErr(StageExtraction, extraction.Err)
	}
	resumeText := extraction.Text
	log.Info("resume extracted", zap.Int("pages", extraction.PageCount), zap.Int("length", len(resumeText)))

	// An empty description reaches skill extraction as is and takes the title
	// prompt. Only similarity falls back to the generic description; the
	// report prompt applies its own fallback.
	jdSkills, err := s.deps.Skills.Extract(ctx, input.JobDescription, RoleJobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job description skills: %w", err)
	}

	resumeSkills, err := s.deps.Skills.Extract(ctx, resumeText, RoleResume)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume skills: %w", err)
	}

	effectiveJD := input.JobDescription
	if strings.TrimSpace(effectiveJD) == "" {
		effectiveJD = DefaultJobDescription
	}
	similarity, err := s.deps.Similarity.Score(ctx, resumeText, effectiveJD)
	if err != nil {
		return nil, fmt.Errorf("failed to score similarity: %w", err)
	}

	report, err := s.deps.Reports.Generate(ctx, resumeText, input.JobDescription)
	if err != nil {
		return nil, err
	}

	comparison := CompareSkills(jdSkills, resumeSkills)

	analysis := &models.Analysis{
		OriginalFileName: input.FileName,
		ResumeText:       resumeText,
		JobDescription:   input.JobDescription,
		JDSkills:         jdSkills.Sorted(),
		ResumeSkills:     resumeSkills.Sorted(),
		MissingSkills:    comparison.Missing,
		SimilarityScore:  similarity,
		ReportScore:      AggregateScore(report),
		Report:           report,
	}

	if err := s.deps.AnalysisRepo.Create(ctx, analysis); err != nil {
		return nil, stageErr(StagePersistence, err)
	}

	log.Info("analysis completed",
		zap.String("analysis_id", analysis.ID.String()),
		zap.Float64("similarity", analysis.SimilarityScore),
		zap.Float64("report_score", analysis.ReportScore),
		zap.Int("missing_skills", len(analysis.MissingSkills)))

	return analysis, nil
}

// Ask implements AnalyzerService.
func (s *analyzerService) Ask(ctx context.Context, analysisID uuid.UUID, question string, source models.QuestionSource) (*models.Question, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	analysis, err := s.deps.AnalysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	answer, err := s.deps.LLM.GenerateText(ctx, s.deps.Prompts.BuildAnswerPrompt(analysis.ResumeText, question))
	if err != nil {
		return nil, stageErr(StageAnswer, fmt.Errorf("failed to answer question: %w", err))
	}

	q := &models.Question{
		AnalysisID: analysisID,
		Source:     source,
		Text:       question,
		Answer:     answer,
	}
	if err := s.deps.QuestionRepo.Create(ctx, q); err != nil {
		return nil, stageErr(StagePersistence, err)
	}

	s.log.Debug("question answered",
		zap.String("analysis_id", analysisID.String()),
		zap.String("source", string(source)))

	return q, nil
}

// AskByVoice implements AnalyzerService.
func (s *analyzerService) AskByVoice(ctx context.Context, analysisID uuid.UUID, rec Recorder) (*VoiceAnswer, error) {
	if s.deps.Voice == nil {
		return nil, ErrSpeechUnavailable
	}

	// fail fast on an unknown analysis before recording anything
	if _, err := s.deps.AnalysisRepo.FindByID(ctx, analysisID); err != nil {
		return nil, err
	}

	transcript, err := s.deps.Voice.Transcribe(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !transcript.SpeechDetected {
		return &VoiceAnswer{Transcript: transcript}, nil
	}

	q, err := s.Ask(ctx, analysisID, transcript.Text, models.SourceVoice)
	if err != nil {
		return nil, err
	}
	return &VoiceAnswer{Transcript: transcript, Question: q}, nil
}

func (s *analyzerService) GetAnalysis(ctx context.Context, analysisID uuid.UUID) (*models.Analysis, error) {
	return s.deps.AnalysisRepo.FindByID(ctx, analysisID)
}

func (s *analyzerService) ListQuestions(ctx context.Context, analysisID uuid.UUID) ([]models.Question, error) {
	if _, err := s.deps.AnalysisRepo.FindByID(ctx, analysisID); err != nil {
		return nil, err
	}
	return s.deps.QuestionRepo.FindByAnalysisID(ctx, analysisID)
}
