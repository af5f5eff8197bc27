package summary

import "context"

// Summarizer defines the interface for generating task summaries.
// This interface serves as a boundary between the application core and
// the external language-model service, following the hexagonal
// architecture pattern.
type Summarizer interface {
	// GenerateTaskSummary produces a short summary for a task from its
	// title and description. An empty string means no summary is
	// available: the client is not configured, the upstream returned no
	// completions, or the call failed and was suppressed at this layer.
	// Upstream and timeout failures are logged and absorbed here; the
	// returned error is reserved for failures this layer does not
	// recognize as summarization-transport conditions.
	GenerateTaskSummary(ctx context.Context, title, description string) (string, error)
}
