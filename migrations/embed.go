// Package migrations embeds the versioned SQL schema of the campus database.
package migrations

import "embed"

// FS holds the up and down scripts in golang-migrate naming
//
//go:embed *.sql
var FS embed.FS
