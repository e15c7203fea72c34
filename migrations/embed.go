// Package migrations holds the MySQL schema of the knowledge base as
// golang-migrate up/down files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
