package services

import (
	"fmt"
	"strings"
)

// DefaultJobDescription stands in for an empty job description when a prompt
// or a similarity score needs one.
const DefaultJobDescription = "Software Engineer with strong fundamentals in Data Structures, Algorithms, OOPs, Git, Linux, and at least one programming language like Python or Java."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSkillPrompt asks for a comma-separated skill list.
func (pb *PromptBuilder) BuildSkillPrompt(mode SkillPromptMode, text string) string {
	switch mode {
	case ModeJobTitleSkills:
		return fmt.Sprintf("List the key skills required for a %s role. Provide the skills as a comma-separated list.", strings.TrimSpace(text))
	case ModeJobDescSkills:
		return fmt.Sprintf("Based on the following job description, list the key skills required for the role. Provide the skills as a comma-separated list.\n\n%s", text)
	default:
		return fmt.Sprintf("Based on the following resume, list the skills that the candidate possesses. Provide the skills as a comma-separated list.\n\n%s", text)
	}
}

// BuildReportPrompt creates the resume review prompt. An empty job
// description is replaced by DefaultJobDescription here and nowhere earlier.
func (pb *PromptBuilder) BuildReportPrompt(resume, jobDescription, reference string) string {
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = DefaultJobDescription
	}

	var referenceBlock string
	if strings.TrimSpace(reference) != "" {
		referenceBlock = fmt.Sprintf("\n# Reference material:\n%s\n", reference)
	}

	return fmt.Sprintf(`
# Context:
- You are an AI Resume Analyzer. You will be given the candidate's resume and the job description.

# Instruction:
- Analyze the resume based on the job description.
- If job description is empty, assume a generic software engineer JD.
- For each point, give a score (out of 5), with emojis (✅, ❌, ⚠) and explanations.
- Add suggestions at the end to improve the resume.
%s
# Inputs:
Candidate Resume: %s
---
Job Description: %s

# Output:
- Use score format like 3/5 at start of each point.
- Add emojis and detailed explanations.
`, referenceBlock, resume, jobDescription)
}

// BuildAnswerPrompt embeds the resume so a question can be answered without
// any conversation state.
func (pb *PromptBuilder) BuildAnswerPrompt(resume, question string) string {
	return fmt.Sprintf(`You are a helpful AI assistant. The user has the following resume:
%s
Based on the resume, answer this question:
"%s"`, resume, strings.TrimSpace(question))
}

// BuildRetrievalQuery creates the text embedded to look up reference material.
func (pb *PromptBuilder) BuildRetrievalQuery(jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = DefaultJobDescription
	}
	return fmt.Sprintf("Job requirements, qualifications and resume scoring guidelines for: %s", jobDescription)
}

// FormatRAGContext renders retrieved reference chunks for a prompt.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
