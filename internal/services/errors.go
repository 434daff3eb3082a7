package services

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageExtraction    Stage = "extraction"
	StageSkills        Stage = "skills"
	StageSimilarity    Stage = "similarity"
	StageReport        Stage = "report"
	StageTranscription Stage = "transcription"
	StageAnswer        Stage = "answer"
	StagePersistence   Stage = "persistence"
)

var (
	ErrExtractionFailed  = errors.New("could not extract text from the PDF file")
	ErrSpeechUnavailable = errors.New("speech-to-text is not configured")
	ErrEmptyQuestion     = errors.New("question must not be empty")
)

// StageError wraps a failure with the pipeline stage that produced it so the
// HTTP layer can decide how to present it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the stage recorded in err, if any.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
