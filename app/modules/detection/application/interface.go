package detectionservice

import (
	"context"
	"errors"
)

// Result is what the vision model saw in a screenshot.
type Result struct {
	Items            []string
	RSN              string
	PromptTokens     int
	CompletionTokens int
}

// ErrQuotaExceeded indicates the vision provider refused the request for
// billing reasons. Callers should steer the user to the manual path rather
// than retry.
var ErrQuotaExceeded = errors.New("vision quota exceeded")

// Client analyzes a drop screenshot.
type Client interface {
	Analyze(ctx context.Context, imageURL string) (Result, error)
}

// Service runs detection and records its cost.
type Service interface {
	AnalyzeAndLog(ctx context.Context, imageURL, user string) (Result, error)
}
