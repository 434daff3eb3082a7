package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	FindByAnalysisID(ctx context.Context, analysisID uuid.UUID) ([]models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *questionRepository) FindByAnalysisID(ctx context.Context, analysisID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		Order("created_at ASC").
		Find(&questions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	return questions, nil
}
