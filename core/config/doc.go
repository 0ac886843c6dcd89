// Package config provides configuration management for the object resolver.
//
// It utilizes Viper for loading configuration from an optional config file
// (config.yaml, config.toml or config.json), a .env file and environment variables.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, metrics, shutdown timeout)
//   - Storage: S3/MinIO driver, credentials and default bucket
//   - Log: Logging level and format
//   - Database: MySQL connection details for manifest persistence
//   - Resolver: Default patterns and batch concurrency
//
// Defaults come from the `default` struct tags. Environment variables use the
// upper-cased key path, e.g. STORAGE_BUCKET or RESOLVER_PATTERNS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
