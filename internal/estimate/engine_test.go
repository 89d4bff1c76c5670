package estimate

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"courseload/internal/model"
	"courseload/pkg/llm"
)

type fakeConfig struct {
	cfg *model.ProviderConfig
	err error
}

func (f *fakeConfig) LoadProviderConfig() (*model.ProviderConfig, error) {
	return f.cfg, f.err
}

type fakeEstimator struct {
	est   *llm.Estimate
	err   error
	calls int
}

func (f *fakeEstimator) Estimate(prompt string) (*llm.Estimate, error) {
	f.calls++
	return f.est, f.err
}

func (f *fakeEstimator) Name() string {
	return "fake"
}

func newTestEngine(cfg *model.ProviderConfig, estimator llm.Estimator) *Engine {
	engine := NewEngine(&fakeConfig{cfg: cfg})
	engine.newEstimator = func(*model.ProviderConfig) llm.Estimator {
		return estimator
	}
	return engine
}

func TestEstimateSingleUsesAI(t *testing.T) {
	estimator := &fakeEstimator{est: &llm.Estimate{Minutes: 95, Reasoning: "multi-part lab"}}
	engine := newTestEngine(&model.ProviderConfig{Provider: model.ProviderOpenAI, OpenAIKey: "k"}, estimator)

	got := engine.EstimateSingle(model.WorkItem{Title: "Lab Report"})

	assert.Equal(t, model.MethodAI, got.Method)
	assert.Equal(t, 95, got.EstimatedMinutes)
	assert.Equal(t, "multi-part lab", got.Reasoning)
	assert.Equal(t, 1, estimator.calls)
}

func TestEstimateSingleFallsBackOnAIError(t *testing.T) {
	estimator := &fakeEstimator{err: errors.New("connection refused")}
	engine := newTestEngine(&model.ProviderConfig{Provider: model.ProviderLocal}, estimator)

	got := engine.EstimateSingle(model.WorkItem{Title: "Essay Draft"})

	assert.Equal(t, model.MethodHeuristic, got.Method)
	assert.Equal(t, 120, got.EstimatedMinutes)
	assert.Equal(t, 1, estimator.calls)
}

func TestEstimateSingleSkipsAIWhenIneligible(t *testing.T) {
	tests := []struct {
		name string
		cfg  *model.ProviderConfig
	}{
		{"no provider", &model.ProviderConfig{Provider: model.ProviderNone}},
		{"openai without key", &model.ProviderConfig{Provider: model.ProviderOpenAI}},
		{"anthropic without key", &model.ProviderConfig{Provider: model.ProviderAnthropic}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(&fakeConfig{cfg: tt.cfg})

			got := engine.EstimateSingle(model.WorkItem{Title: "Quiz 2"})

			assert.Equal(t, model.MethodHeuristic, got.Method)
			assert.Equal(t, 30, got.EstimatedMinutes)
		})
	}
}

func TestEstimateSingleSurvivesConfigError(t *testing.T) {
	engine := NewEngine(&fakeConfig{err: errors.New("db down")})

	got := engine.EstimateSingle(model.WorkItem{Title: "Reading Ch. 4"})

	assert.Equal(t, model.MethodHeuristic, got.Method)
	assert.Equal(t, 30, got.EstimatedMinutes)
}

func TestEstimateSingleResolvesMissingCategory(t *testing.T) {
	engine := NewEngine(&fakeConfig{cfg: &model.ProviderConfig{Provider: model.ProviderNone}})

	got := engine.EstimateSingle(model.WorkItem{Title: "Final Exam"})

	assert.Equal(t, model.CategoryExam, got.Category)
}

func TestEstimateAllEmpty(t *testing.T) {
	engine := NewEngine(&fakeConfig{cfg: &model.ProviderConfig{Provider: model.ProviderNone}})

	got := engine.EstimateAll([]model.WorkItem{})

	assert.NotEqual(t, nil, got)
	assert.Equal(t, 0, len(got))
}

func TestEstimateAllPreservesOrder(t *testing.T) {
	engine := NewEngine(&fakeConfig{cfg: &model.ProviderConfig{Provider: model.ProviderNone}})

	items := []model.WorkItem{
		{ID: "3", Title: "Quiz 1"},
		{ID: "1", Title: "Essay 1"},
		{ID: "2", Title: "Reading 1"},
	}
	got := engine.EstimateAll(items)

	assert.Equal(t, 3, len(got))
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, "2", got[2].ID)
}
