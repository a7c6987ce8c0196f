// Package dialect names the storage dialects the emitted schema can be
// planned for.
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Sub-packages
//
//   - dialect/sql: database/sql drivers and statement execution
//   - dialect/sql/schema: normalized tables and DDL planning with atlas
package dialect
