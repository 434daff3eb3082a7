package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AskHandler struct {
	analyzer      services.AnalyzerService
	maxAudioBytes int64
}

func NewAskHandler(analyzer services.AnalyzerService, maxAudioBytes int64) *AskHandler {
	return &AskHandler{
		analyzer:      analyzer,
		maxAudioBytes: maxAudioBytes,
	}
}

// HandleAsk handles POST /analyses/:id/ask
func (h *AskHandler) HandleAsk(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	var req models.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	question, err := h.analyzer.Ask(c.UserContext(), id, req.Question, models.SourceText)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAskResponse(question))
}

// HandleAskVoice handles POST /analyses/:id/ask/voice. The request body is
// the recorded clip.
func (h *AskHandler) HandleAskVoice(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	rec := services.NewPCMStreamRecorder(bytes.NewReader(c.Body()), h.maxAudioBytes)

	result, err := h.analyzer.AskByVoice(c.UserContext(), id, rec)
	if err != nil {
		return toHTTPError(err)
	}

	resp := models.VoiceAskResponse{
		Transcript:     result.Transcript.Text,
		SpeechDetected: result.Transcript.SpeechDetected,
	}
	if result.Question != nil {
		answer := toAskResponse(result.Question)
		resp.Answer = &answer
	}

	return c.JSON(resp)
}

// HandleListQuestions handles GET /analyses/:id/questions
func (h *AskHandler) HandleListQuestions(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	questions, err := h.analyzer.ListQuestions(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.AskResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, toAskResponse(&questions[i]))
	}

	return c.JSON(resp)
}

func toAskResponse(q *models.Question) models.AskResponse {
	return models.AskResponse{
		ID:         q.ID.String(),
		AnalysisID: q.AnalysisID.String(),
		Source:     string(q.Source),
		Question:   q.Text,
		Answer:     q.Answer,
	}
}
