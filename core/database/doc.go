// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// connections based on the application's configuration. MySQL is the production driver;
// SQLite is supported for local use and tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database and verifies
// it with a ping before returning, so callers can fall back cleanly when the database
// is unreachable.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which the structure
// feature uses to verify that the areas, categories, and attribute_definitions
// tables carry the columns the loader and applier expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.VerifyColumns(db, "areas", []string{"id", "name"})
package database
