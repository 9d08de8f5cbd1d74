package migrations

import "embed"

// FS holds the MySQL schema migrations, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
