package analysis

import (
	"context"

	"google.golang.org/genai"
)

// Request is one schema-constrained completion call.
type Request struct {
	Model  string
	Prompt string
	Schema *genai.Schema
}

// Completer submits a Request to the completion service and returns the raw
// response text. An empty string means the service answered with no text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
