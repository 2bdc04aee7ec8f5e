// Package migrations holds the PostgreSQL schema of the ledger as
// golang-migrate files, embedded so the binaries need no migrations
// directory at runtime.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
