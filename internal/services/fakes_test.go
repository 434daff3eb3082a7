package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// fakeLLM answers prompts with reply(prompt) and records every prompt.
type fakeLLM struct {
	mu      sync.Mutex
	reply   func(prompt string) (string, error)
	prompts []string
}

func (f *fakeLLM) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.reply == nil {
		return "", nil
	}
	return f.reply(prompt)
}

func (f *fakeLLM) Model() string { return "fake-model" }

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// fakeEmbedder maps each text to a bag-of-letters vector so similar texts
// get similar vectors.
type fakeEmbedder struct {
	err     error
	batches [][]string
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	if f.err != nil {
		return nil, f.err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = letterVector(text)
	}
	return out, nil
}

func letterVector(text string) []float32 {
	v := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			v[r-'a']++
		}
	}
	return v
}

type fakeSTT struct {
	segments []string
	err      error

	path       string
	beamSize   int
	fileExists bool
}

func (f *fakeSTT) Transcribe(_ context.Context, wavPath string, beamSize int) ([]string, error) {
	f.path = wavPath
	f.beamSize = beamSize
	_, statErr := os.Stat(wavPath)
	f.fileExists = statErr == nil
	return f.segments, f.err
}

type fakeRecorder struct {
	samples []int
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, duration time.Duration, sampleRate int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return fitSamples(f.samples, int(duration.Seconds()*float64(sampleRate))), nil
}

type memAnalysisRepo struct {
	rows      map[uuid.UUID]models.Analysis
	createErr error
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{rows: make(map[uuid.UUID]models.Analysis)}
}

func (r *memAnalysisRepo) Create(_ context.Context, a *models.Analysis) error {
	if r.createErr != nil {
		return r.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.rows[a.ID] = *a
	return nil
}

func (r *memAnalysisRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Analysis, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

type memQuestionRepo struct {
	rows []models.Question
}

func (r *memQuestionRepo) Create(_ context.Context, q *models.Question) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.rows = append(r.rows, *q)
	return nil
}

func (r *memQuestionRepo) FindByAnalysisID(_ context.Context, id uuid.UUID) ([]models.Question, error) {
	var out []models.Question
	for _, q := range r.rows {
		if q.AnalysisID == id {
			out = append(out, q)
		}
	}
	return out, nil
}

var errUpstream = errors.New("upstream unavailable")
