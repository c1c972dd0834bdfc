// Package migrations embeds the goose migrations for the key-value table.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
