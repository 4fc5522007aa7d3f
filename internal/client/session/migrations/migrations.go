// Package migrations embeds the goose SQL files for the CLI session database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
