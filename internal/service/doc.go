// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects, the task store
// (defined in internal/store) and the summarization client (defined in
// internal/summary) to fulfill application features.
//
// Services receive dependencies through constructor injection and apply
// transactional boundaries around write operations. They translate
// store-level errors into the error shapes the request boundary maps to
// HTTP responses, and they enforce the rule that a summarization failure
// never fails the surrounding create or update operation.
package service
