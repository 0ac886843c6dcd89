// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the HTTP API.
//
// # Context Awareness
//
// Every HTTP request carries a RayID set by the rayid middleware. The WithRayID helper
// extracts it from the Fiber context and attaches it to the log entry, so the listing
// calls made while resolving one request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Resolver started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Resolve failed", zap.Error(err))
package logger
