// Package migrations embeds the goose SQL migrations so both the API
// server and the migrate command carry the schema with the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
