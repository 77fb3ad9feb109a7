// Package idgen produces opaque identifiers for kernel boots and lifecycle
// events. Tests replace NewFunc to obtain deterministic values.
package idgen
