package migrations

import "embed"

// Postgres contains the schema for the Postgres lead sheet.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite contains the schema for the SQLite lead sheet.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
