// Package openai implements the summary.Summarizer interface against an
// OpenAI-compatible chat-completions endpoint, with per-request timeouts,
// exponential-backoff retry for transport failures, and HTTP status mapping
// to typed errors.
package openai
