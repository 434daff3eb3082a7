package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(app *fiber.App, analyze *AnalyzeHandler, results *ResultHandler, ask *AskHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyze.HandleAnalyze)
	api.Get("/analyses/:id", results.HandleGetAnalysis)
	api.Get("/analyses/:id/report", results.HandleDownloadReport)
	api.Post("/analyses/:id/ask", ask.HandleAsk)
	api.Post("/analyses/:id/ask/voice", ask.HandleAskVoice)
	api.Get("/analyses/:id/questions", ask.HandleListQuestions)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/analyses/:id",
				"GET /api/v1/analyses/:id/report",
				"POST /api/v1/analyses/:id/ask",
				"POST /api/v1/analyses/:id/ask/voice",
				"GET /api/v1/analyses/:id/questions",
			},
		})
	})
}
