// Package migrations holds the SQL schema of the reference database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
