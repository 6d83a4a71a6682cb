// Package migrations embeds the goose SQL migrations so binaries can
// run them without shipping files alongside.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
