// Package migrations embeds the server's SQL migrations so goose can run
// them without shipping files next to the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
