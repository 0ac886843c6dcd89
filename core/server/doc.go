// Package server holds the HTTP server configuration.
//
// While cmd/start.go handles the server startup, this package defines the listen port,
// the API key guarding every route, whether /metrics is exposed and the graceful
// shutdown bound.
package server
