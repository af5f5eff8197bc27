package mocks

import (
	"context"
	"sync"

	"github.com/briefops/taskbrief-api/internal/summary"
)

// SummarizeCall records the arguments of one GenerateTaskSummary invocation.
type SummarizeCall struct {
	Title       string
	Description string
}

// MockSummarizer implements summary.Summarizer for testing
type MockSummarizer struct {
	// Custom behavior function
	GenerateTaskSummaryFn func(ctx context.Context, title, description string) (string, error)

	// Default response values
	Summary string
	Err     error

	// Call tracking for verification
	mu    sync.Mutex
	Calls []SummarizeCall
}

var _ summary.Summarizer = (*MockSummarizer)(nil)

// GenerateTaskSummary implements summary.Summarizer
func (m *MockSummarizer) GenerateTaskSummary(
	ctx context.Context,
	title, description string,
) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, SummarizeCall{Title: title, Description: description})
	m.mu.Unlock()

	if m.GenerateTaskSummaryFn != nil {
		return m.GenerateTaskSummaryFn(ctx, title, description)
	}
	return m.Summary, m.Err
}

// CallCount returns the number of recorded invocations.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
