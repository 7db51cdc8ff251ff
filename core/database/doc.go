// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL or SQLite connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection to the database. The connection is
// optional: it is only needed when a comparison reads one of its datasets from a table.
//
// # Schema Inspection
//
// GetTableColumns returns the ordered column list of a table. The table dataset source
// uses it as the dataset schema, so the column order of the table is the field order
// of the comparison report.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "parcels_2024")
package database
