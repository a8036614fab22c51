package ai

import (
	"context"
	"errors"

	"github.com/pbelx/ibm-hackathon/internal/dispatch"
)

var ErrNotConfigured = errors.New("collaborator not configured")

// Analysis is what the text-analysis service extracted from a message.
type Analysis struct {
	Keywords []string `json:"keywords"`
	Entities []string `json:"entities"`
}

// Analyzer extracts keywords and entities. The returned int64 is the call
// latency in milliseconds.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, int64, error)
}

type GenerationRequest struct {
	UserMessage string
	Metadata    dispatch.Metadata
}

// Generator phrases the final customer-facing message.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
