package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// ErrorHandler renders every error as {"error": ..., "code": ...}. Server
// side failures are logged; client errors are not.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"code":  code,
		})
	}
}

// toHTTPError maps a service error onto the status the client sees.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	case errors.Is(err, services.ErrEmptyQuestion):
		return fiber.NewError(fiber.StatusBadRequest, "question is required")
	case errors.Is(err, services.ErrInvalidFileType), errors.Is(err, services.ErrFileTooLarge):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSpeechUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Voice questions are not available")
	}

	stage, ok := services.StageOf(err)
	if !ok {
		return err
	}

	switch stage {
	case services.StageExtraction:
		return fiber.NewError(fiber.StatusUnprocessableEntity, services.ExtractionFailedMessage)
	case services.StagePersistence:
		return &wrappedError{fiber.NewError(fiber.StatusInternalServerError, "Failed to save results"), err}
	default:
		return &wrappedError{fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("The %s service failed", stage)), err}
	}
}

// wrappedError keeps the underlying cause for logging while presenting a
// sanitised fiber.Error to the client.
type wrappedError struct {
	public *fiber.Error
	cause  error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %v", e.public.Message, e.cause)
}

func (e *wrappedError) Unwrap() []error {
	return []error{e.public, e.cause}
}
