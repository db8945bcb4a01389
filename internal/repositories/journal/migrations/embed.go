package migrations

import "embed"

// FS contains the embedded SQLite migrations of the encounter journal.
//
//go:embed *.sql
var FS embed.FS
