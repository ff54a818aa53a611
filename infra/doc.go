// Package infra contains technical adapters: the autosave slot backends,
// the zerolog logger, Prometheus metrics and Sentry error reporting. These
// packages depend only on the interfaces defined in the core packages and
// on the config package.
package infra
