// Package mocks provides hand-rolled mock implementations of the store and
// summarizer interfaces for use in tests. Each mock exposes per-method
// function fields for custom behavior, default return values for the common
// case, and call tracking for verification.
package mocks
