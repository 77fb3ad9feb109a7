// Package tracing wraps OpenTelemetry so that kernel operations can open
// spans without importing the upstream packages. Until Init or
// InitWithExporter is called the global no-op provider is used and spans
// cost nothing.
package tracing
