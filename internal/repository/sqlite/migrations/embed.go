package migrations

import "embed"

// FS holds the goose-annotated SQL migrations.
//
//go:embed *.sql
var FS embed.FS
