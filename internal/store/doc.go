// Package store defines the persistence interfaces and shared persistence
// errors of the application. Concrete implementations live under
// internal/platform; services depend only on the interfaces declared here.
package store
