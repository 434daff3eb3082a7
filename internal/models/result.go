package models

type AnalysisResponse struct {
	ID               string      `json:"id"`
	OriginalFileName string      `json:"original_filename"`
	JobDescription   string      `json:"job_description"`
	SimilarityScore  float64     `json:"similarity_score"`
	SimilarityPct    string      `json:"similarity_percent"`
	ReportScore      float64     `json:"report_score"`
	ReportScorePct   string      `json:"report_score_percent"`
	Report           string      `json:"report"`
	JDSkills         []string    `json:"jd_skills"`
	ResumeSkills     []string    `json:"resume_skills"`
	MissingSkills    []string    `json:"missing_skills"`
	Radar            *SkillRadar `json:"skill_radar,omitempty"`
	CreatedAt        string      `json:"created_at"`
}

// SkillRadar carries the data for a radar-style skill coverage chart.
type SkillRadar struct {
	Axes        []string `json:"axes"`
	MatchVector []int    `json:"match_vector"`
	Coverage    float64  `json:"coverage"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

type AskResponse struct {
	ID         string `json:"id,omitempty"`
	AnalysisID string `json:"analysis_id"`
	Source     string `json:"source"`
	Question   string `json:"question"`
	Answer     string `json:"answer,omitempty"`
}

type VoiceAskResponse struct {
	Transcript     string       `json:"transcript"`
	SpeechDetected bool         `json:"speech_detected"`
	Answer         *AskResponse `json:"answer,omitempty"`
}
