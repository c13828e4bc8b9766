// Package migrations embeds the goose schema migrations for the SQL-backed
// stores, one directory per dialect.
package migrations

import "embed"

// Directories inside Migrations.
const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
