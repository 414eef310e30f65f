package migrations

import "embed"

// FS contains embedded Postgres migrations for the lobby tables.
//
//go:embed *.sql
var FS embed.FS
