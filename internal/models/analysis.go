package models

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	ResumeText       string    `gorm:"type:text;not null" json:"-"`
	JobDescription   string    `gorm:"type:text" json:"job_description"`
	JDSkills         []string  `gorm:"serializer:json;type:jsonb" json:"jd_skills"`
	ResumeSkills     []string  `gorm:"serializer:json;type:jsonb" json:"resume_skills"`
	MissingSkills    []string  `gorm:"serializer:json;type:jsonb" json:"missing_skills"`
	SimilarityScore  float64   `gorm:"not null" json:"similarity_score"`
	ReportScore      float64   `gorm:"not null" json:"report_score"`
	Report           string    `gorm:"type:text" json:"report"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Questions []Question `gorm:"foreignKey:AnalysisID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

type QuestionSource string

const (
	SourceText  QuestionSource = "text"
	SourceVoice QuestionSource = "voice"
)

type Question struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AnalysisID uuid.UUID      `gorm:"type:uuid;not null;index" json:"analysis_id"`
	Source     QuestionSource `gorm:"type:text;not null;default:'text'" json:"source"`
	Text       string         `gorm:"type:text;not null" json:"question"`
	Answer     string         `gorm:"type:text" json:"answer"`
	CreatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}
