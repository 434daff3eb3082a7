package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	storage  services.ScratchStorage
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, storage services.ScratchStorage) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		storage:  storage,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please upload at least a resume to analyze")
	}

	data, err := h.storage.ReadUpload(file)
	if err != nil {
		return toHTTPError(err)
	}

	analysis, err := h.analyzer.Analyze(c.UserContext(), services.AnalyzeInput{
		FileName:       file.Filename,
		Data:           data,
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAnalysisResponse(analysis))
}

func toAnalysisResponse(a *models.Analysis) models.AnalysisResponse {
	comparison := services.CompareSkills(
		services.NewSkillSet(a.JDSkills...),
		services.NewSkillSet(a.ResumeSkills...),
	)

	return models.AnalysisResponse{
		ID:               a.ID.String(),
		OriginalFileName: a.OriginalFileName,
		JobDescription:   a.JobDescription,
		SimilarityScore:  a.SimilarityScore,
		SimilarityPct:    formatPercent(a.SimilarityScore),
		ReportScore:      a.ReportScore,
		ReportScorePct:   formatPercent(a.ReportScore),
		Report:           a.Report,
		JDSkills:         nonNil(a.JDSkills),
		ResumeSkills:     nonNil(a.ResumeSkills),
		MissingSkills:    nonNil(a.MissingSkills),
		Radar: &models.SkillRadar{
			Axes:        comparison.Axes,
			MatchVector: comparison.MatchVector,
			Coverage:    comparison.Coverage,
		},
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
