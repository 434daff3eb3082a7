package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
)

// NoSpeechDetected is the transcript returned when nothing was recognised.
const NoSpeechDetected = "No speech detected."

const wavFormatPCM = 1

type Transcript struct {
	Text           string
	SpeechDetected bool
}

type VoiceSettings struct {
	Duration   time.Duration
	SampleRate int
	BeamSize   int
}

type VoiceTranscriber interface {
	Transcribe(ctx context.Context, rec Recorder) (Transcript, error)
}

type voiceTranscriber struct {
	stt      SpeechToText
	storage  ScratchStorage
	settings VoiceSettings
	log      *zap.Logger
}

func NewVoiceTranscriber(stt SpeechToText, storage ScratchStorage, settings VoiceSettings, log *zap.Logger) VoiceTranscriber {
	return &voiceTranscriber{
		stt:      stt,
		storage:  storage,
		settings: settings,
		log:      log.Named("voice"),
	}
}

// Transcribe implements VoiceTranscriber. The intermediate WAV file is
// removed before returning, whatever the outcome.
func (v *voiceTranscriber) Transcribe(ctx context.Context, rec Recorder) (Transcript, error) {
	samples, err := rec.Record(ctx, v.settings.Duration, v.settings.SampleRate)
	if err != nil {
		return Transcript{}, stageErr(StageTranscription, fmt.Errorf("failed to record audio: %w", err))
	}

	path, err := v.writeWAV(samples)
	if path != "" {
		defer func() {
			if rmErr := v.storage.Remove(path); rmErr != nil {
				v.log.Warn("failed to remove recording", zap.String("path", path), zap.Error(rmErr))
			}
		}()
	}
	if err != nil {
		return Transcript{}, stageErr(StageTranscription, err)
	}

	segments, err := v.stt.Transcribe(ctx, path, v.settings.BeamSize)
	if err != nil {
		return Transcript{}, stageErr(StageTranscription, err)
	}

	text := strings.TrimSpace(strings.Join(segments, " "))
	v.log.Debug("audio transcribed", zap.Int("segments", len(segments)), zap.Int("length", len(text)))

	if text == "" {
		return Transcript{Text: NoSpeechDetected}, nil
	}
	return Transcript{Text: text, SpeechDetected: true}, nil
}

// writeWAV returns the file path even on failure once the file exists, so
// the caller can clean it up.
func (v *voiceTranscriber) writeWAV(samples []int) (string, error) {
	f, err := v.storage.CreateTemp("voice", ".wav")
	if err != nil {
		return "", err
	}
	path := f.Name()

	enc := wav.NewEncoder(f, v.settings.SampleRate, pcmBitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: v.settings.SampleRate},
		Data:           samples,
		SourceBitDepth: pcmBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return path, fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return path, fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("failed to close WAV file: %w", err)
	}
	return path, nil
}
