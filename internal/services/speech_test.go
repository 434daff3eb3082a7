package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTranscriptions struct {
	resp *openai.AudioTranscriptionNewResponseUnion
	err  error
	last openai.AudioTranscriptionNewParams
}

func (f *fakeTranscriptions) New(_ context.Context, body openai.AudioTranscriptionNewParams, _ ...option.RequestOption) (*openai.AudioTranscriptionNewResponseUnion, error) {
	f.last = body
	return f.resp, f.err
}

func writeTempWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))
	return path
}

func TestWhisperReturnsSegments(t *testing.T) {
	api := &fakeTranscriptions{resp: &openai.AudioTranscriptionNewResponseUnion{
		Text: "hello world",
		Segments: []openai.TranscriptionSegment{
			{Text: " hello"},
			{Text: " world"},
		},
	}}
	svc := &WhisperService{transcriptions: api, model: "whisper-1", log: zap.NewNop()}

	segments, err := svc.Transcribe(context.Background(), writeTempWAV(t), 5)
	require.NoError(t, err)

	assert.Equal(t, []string{" hello", " world"}, segments)
	assert.Equal(t, "whisper-1", api.last.Model)
	assert.Equal(t, openai.AudioResponseFormatVerboseJSON, api.last.ResponseFormat)
	assert.Equal(t, map[string]any{"beam_size": 5}, api.last.ExtraFields())
}

func TestWhisperFallsBackToText(t *testing.T) {
	api := &fakeTranscriptions{resp: &openai.AudioTranscriptionNewResponseUnion{Text: "just text"}}
	svc := &WhisperService{transcriptions: api, model: "whisper-1", log: zap.NewNop()}

	segments, err := svc.Transcribe(context.Background(), writeTempWAV(t), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"just text"}, segments)
	assert.Empty(t, api.last.ExtraFields())
}

func TestWhisperMissingFile(t *testing.T) {
	svc := &WhisperService{transcriptions: &fakeTranscriptions{}, log: zap.NewNop()}

	_, err := svc.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), 5)
	assert.Error(t, err)
}

func TestWhisperPropagatesErrors(t *testing.T) {
	svc := &WhisperService{transcriptions: &fakeTranscriptions{err: errUpstream}, log: zap.NewNop()}

	_, err := svc.Transcribe(context.Background(), writeTempWAV(t), 5)
	assert.ErrorIs(t, err, errUpstream)
}
