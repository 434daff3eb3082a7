package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// SpeechToText turns a WAV file into an ordered list of text segments.
type SpeechToText interface {
	Transcribe(ctx context.Context, wavPath string, beamSize int) ([]string, error)
}

type transcriptionsAPI interface {
	New(ctx context.Context, body openai.AudioTranscriptionNewParams, opts ...option.RequestOption) (*openai.AudioTranscriptionNewResponseUnion, error)
}

// WhisperService calls an OpenAI-compatible /audio/transcriptions endpoint.
// Self-hosted Whisper servers honour the beam_size form field; the hosted
// OpenAI API ignores it.
type WhisperService struct {
	transcriptions transcriptionsAPI
	model          string
	log            *zap.Logger
}

func NewWhisperService(apiKey, baseURL, model string, log *zap.Logger) *WhisperService {
	client := openai.NewClient(clientOptions(apiKey, baseURL)...)

	return &WhisperService{
		transcriptions: &client.Audio.Transcriptions,
		model:          model,
		log:            log.Named("whisper"),
	}
}

// Transcribe implements SpeechToText.
func (w *WhisperService) Transcribe(ctx context.Context, wavPath string, beamSize int) ([]string, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   openai.File(f, filepath.Base(wavPath), "audio/wav"),
		Model:                  w.model,
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}
	if beamSize > 0 {
		params.SetExtraFields(map[string]any{"beam_size": beamSize})
	}

	resp, err := w.transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}
	if resp == nil {
		return nil, errors.New("empty transcription response")
	}

	segments := make([]string, 0, len(resp.Segments))
	for _, segment := range resp.Segments {
		segments = append(segments, segment.Text)
	}
	if len(segments) == 0 && strings.TrimSpace(resp.Text) != "" {
		segments = append(segments, resp.Text)
	}

	w.log.Debug("transcription received", zap.Int("segments", len(segments)))

	return segments, nil
}
