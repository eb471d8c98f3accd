// Package migrations embeds the goose migration scripts for the questions and highscores tables.
package migrations

import "embed"

// FS holds the migration scripts at its root.
//
//go:embed *.sql
var FS embed.FS
