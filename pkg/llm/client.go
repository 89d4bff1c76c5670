package llm

import "fmt"

// Estimate is a parsed backend response: a duration in minutes plus the
// model's short justification.
type Estimate struct {
	Minutes   int
	Reasoning string
}

type Estimator interface {
	Estimate(prompt string) (*Estimate, error)
	Name() string
}

// Keep the sampling tight so repeated estimates for the same item stay
// close, and cap output since the reply is one JSON line.
const (
	estimateTemperature = 0.3
	estimateMaxTokens   = 200
)

// ProviderError is a transport failure or non-success status from a
// generation backend. Status is zero when the request never completed.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s api error: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s api error: status %d: %s", e.Provider, e.Status, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ParseError means the backend answered but no parse stage could read a
// minutes value out of the text.
type ParseError struct {
	Provider string
	Content  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s response not parseable: %s", e.Provider, e.Content)
}
