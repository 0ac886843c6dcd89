// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL connections from the application's configuration.
// The database is optional: when Connect fails the server keeps running without
// manifest persistence.
//
// # Schema Inspection
//
// GetTableColumns reads the live column definitions of a table. The schema integrity
// check compares them against the GORM models of the manifest feature.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "manifests")
package database
