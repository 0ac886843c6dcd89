// Package metrics exposes Prometheus instrumentation for pattern resolution and
// object transfers.
//
// Metrics are registered on a private registry so tests can create as many
// instances as they like. A nil *Metrics is valid and records nothing.
package metrics
