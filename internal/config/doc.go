// Package config defines the application's configuration structure and the
// loader that populates it from environment variables. Configuration is an
// immutable value constructed once at startup and handed to constructors;
// there is no process-wide cached settings object.
package config
