// Package database opens the relational store that persists live objects.
//
// It wraps GORM and configures either MySQL (production) or SQLite (local runs and
// tests) from the application configuration.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the actual table definition so features
// can verify their schema after migrating.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "ghosts", []string{"id", "name"})
package database
