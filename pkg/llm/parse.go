package llm

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Backends parse replies through an ordered chain of strategies with
// first-success-wins semantics: strict JSON, then a JSON object embedded in
// surrounding prose, then a bare "<number> minutes" phrase. The hosted
// backends chain the strict and bare stages and fail otherwise; the local
// backend chains the embedded and bare stages and falls back to a fixed
// default, since self-hosted models vary widely in output discipline.

type parserFunc func(text string) (*Estimate, bool)

func parseChain(text string, parsers ...parserFunc) (*Estimate, bool) {
	for _, parse := range parsers {
		if est, ok := parse(text); ok {
			return est, true
		}
	}
	return nil, false
}

type estimatePayload struct {
	Minutes   int    `json:"minutes"`
	Reasoning string `json:"reasoning"`
}

var (
	embeddedJSONPattern = regexp.MustCompile(`\{[^{}]*"minutes"[^{}]*\}`)
	bareMinutesPattern  = regexp.MustCompile(`(?i)(\d+)\s*minutes?`)
)

func parseStrictJSON(text string) (*Estimate, bool) {
	content := stripCodeFences(text)

	var payload estimatePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, false
	}
	if payload.Minutes <= 0 {
		return nil, false
	}
	return &Estimate{Minutes: payload.Minutes, Reasoning: payload.Reasoning}, true
}

func parseEmbeddedJSON(text string) (*Estimate, bool) {
	match := embeddedJSONPattern.FindString(text)
	if match == "" {
		return nil, false
	}

	var payload estimatePayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, false
	}
	if payload.Minutes <= 0 {
		return nil, false
	}
	return &Estimate{Minutes: payload.Minutes, Reasoning: payload.Reasoning}, true
}

func parseBareMinutes(text string) (*Estimate, bool) {
	match := bareMinutesPattern.FindStringSubmatch(text)
	if match == nil {
		return nil, false
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil || minutes <= 0 {
		return nil, false
	}
	return &Estimate{Minutes: minutes}, true
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
