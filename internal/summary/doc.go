// Package summary defines the boundary between the application core and
// the external text-generation service used for task summaries, along with
// the typed errors that summarization clients surface.
package summary
