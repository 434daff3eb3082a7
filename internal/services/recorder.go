package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/wav"
)

const pcmBitDepth = 16

// Recorder captures a fixed-length mono clip as signed 16-bit samples.
type Recorder interface {
	Record(ctx context.Context, duration time.Duration, sampleRate int) ([]int, error)
}

// PCMStreamRecorder takes its "recording" from a stream supplied by the
// client. The stream is either a WAV file or raw little-endian s16 mono PCM
// at the requested sample rate.
type PCMStreamRecorder struct {
	src      io.Reader
	maxBytes int64
}

// NewPCMStreamRecorder reads at most maxBytes from src; 0 means no limit.
func NewPCMStreamRecorder(src io.Reader, maxBytes int64) *PCMStreamRecorder {
	return &PCMStreamRecorder{src: src, maxBytes: maxBytes}
}

// Record implements Recorder. The clip is padded with silence or truncated so
// it always holds exactly duration*sampleRate samples.
func (r *PCMStreamRecorder) Record(ctx context.Context, duration time.Duration, sampleRate int) ([]int, error) {
	if duration <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid recording parameters: duration=%s sample_rate=%d", duration, sampleRate)
	}

	src := r.src
	if r.maxBytes > 0 {
		src = io.LimitReader(src, r.maxBytes)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var samples []int
	if bytes.HasPrefix(data, []byte("RIFF")) {
		samples, err = decodeWAV(data, sampleRate)
		if err != nil {
			return nil, err
		}
	} else {
		samples = decodePCM16(data)
	}

	return fitSamples(samples, int(duration.Seconds()*float64(sampleRate))), nil
}

func decodeWAV(data []byte, sampleRate int) ([]int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	if dec.NumChans < 1 || dec.BitDepth < 8 {
		return nil, errors.New("invalid WAV file")
	}

	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	// first channel only
	mono := make([]int, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		mono = append(mono, rescaleBitDepth(buf.Data[i], buf.SourceBitDepth))
	}

	if buf.Format != nil && buf.Format.SampleRate > 0 && buf.Format.SampleRate != sampleRate {
		mono = resampleNearest(mono, buf.Format.SampleRate, sampleRate)
	}
	return mono, nil
}

func decodePCM16(data []byte) []int {
	samples := make([]int, len(data)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(data[2*i:])))
	}
	return samples
}

func rescaleBitDepth(sample, bitDepth int) int {
	switch {
	case bitDepth == 0 || bitDepth == pcmBitDepth:
		return sample
	case bitDepth == 8:
		// 8-bit WAV is unsigned
		return (sample - 128) << 8
	case bitDepth > pcmBitDepth:
		return sample >> (bitDepth - pcmBitDepth)
	default:
		return sample << (pcmBitDepth - bitDepth)
	}
}

func resampleNearest(samples []int, from, to int) []int {
	if len(samples) == 0 {
		return samples
	}

	n := int(math.Round(float64(len(samples)) * float64(to) / float64(from)))
	out := make([]int, n)
	for i := range out {
		j := i * from / to
		if j >= len(samples) {
			j = len(samples) - 1
		}
		out[i] = samples[j]
	}
	return out
}

func fitSamples(samples []int, n int) []int {
	if len(samples) >= n {
		return samples[:n]
	}

	out := make([]int, n)
	copy(out, samples)
	return out
}
