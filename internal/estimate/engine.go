package estimate

import (
	"log/slog"
	"time"

	"courseload/internal/model"
	"courseload/pkg/llm"
)

type ConfigSource interface {
	LoadProviderConfig() (*model.ProviderConfig, error)
}

// Engine produces one estimate per item, preferring the configured AI
// backend and falling back to the heuristic table. Provider configuration
// is loaded fresh on every call so a settings change takes effect on the
// next item without a restart.
type Engine struct {
	config       ConfigSource
	newEstimator func(cfg *model.ProviderConfig) llm.Estimator
}

func NewEngine(config ConfigSource) *Engine {
	return &Engine{
		config:       config,
		newEstimator: newEstimator,
	}
}

// newEstimator returns nil when the config is not eligible for AI
// estimation: no provider selected, or a hosted provider without a key.
// The local backend needs no credential.
func newEstimator(cfg *model.ProviderConfig) llm.Estimator {
	switch cfg.Provider {
	case model.ProviderLocal:
		return llm.NewLocalClient(cfg.LocalURL, cfg.LocalModel)
	case model.ProviderOpenAI:
		if cfg.OpenAIKey != "" {
			return llm.NewOpenAIClient(cfg.OpenAIKey, cfg.Model)
		}
	case model.ProviderAnthropic:
		if cfg.AnthropicKey != "" {
			return llm.NewAnthropicClient(cfg.AnthropicKey, cfg.Model)
		}
	}
	return nil
}

// EstimateSingle never fails. Any AI-path error, from transport to
// unparseable output, is logged and absorbed into a heuristic result.
func (e *Engine) EstimateSingle(item model.WorkItem) model.EnrichedItem {
	if item.Category == "" {
		item.Category = model.ResolveCategory(item.Title, item.Type)
	}

	cfg, err := e.config.LoadProviderConfig()
	if err != nil {
		slog.Error("error loading provider config", "error", err)
		cfg = &model.ProviderConfig{Provider: model.ProviderNone}
	}

	result := model.EstimateResult{
		Method:      model.MethodHeuristic,
		EstimatedAt: time.Now(),
	}

	if estimator := e.newEstimator(cfg); estimator != nil {
		est, err := estimator.Estimate(llm.BuildPrompt(item))
		if err != nil {
			slog.Warn("ai estimate failed, falling back to heuristic",
				"provider", estimator.Name(), "item_id", item.ID, "error", err)
		} else {
			result.Method = model.MethodAI
			result.EstimatedMinutes = est.Minutes
			result.Reasoning = est.Reasoning
		}
	}

	if result.Method == model.MethodHeuristic {
		result.EstimatedMinutes = HeuristicEstimate(item)
	}

	return model.EnrichedItem{WorkItem: item, EstimateResult: result}
}

// EstimateAll runs items strictly sequentially in input order. Items are
// independent, so this could fan out, but one in-flight generation call at
// a time keeps backend load and rate-limit behavior predictable.
func (e *Engine) EstimateAll(items []model.WorkItem) []model.EnrichedItem {
	enriched := make([]model.EnrichedItem, 0, len(items))
	for _, item := range items {
		enriched = append(enriched, e.EstimateSingle(item))
	}
	return enriched
}
