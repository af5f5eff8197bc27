// Package domain defines the Task entity and its validation rules. Tasks
// own their invariants: constructors and setters reject invalid state, so
// every Task handed to the storage or service layers is already valid.
package domain
