package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/services"
)

const reportFileName = "report.txt"

type ResultHandler struct {
	analyzer services.AnalyzerService
}

func NewResultHandler(analyzer services.AnalyzerService) *ResultHandler {
	return &ResultHandler{
		analyzer: analyzer,
	}
}

// HandleGetAnalysis handles GET /analyses/:id
func (h *ResultHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	analysis, err := h.analyzer.GetAnalysis(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(toAnalysisResponse(analysis))
}

// HandleDownloadReport handles GET /analyses/:id/report
func (h *ResultHandler) HandleDownloadReport(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	analysis, err := h.analyzer.GetAnalysis(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}

	c.Attachment(reportFileName)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(analysis.Report)
}

func parseAnalysisID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid analysis ID format")
	}
	return id, nil
}
