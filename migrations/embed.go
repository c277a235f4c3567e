// Package migrations holds the numbered SQL migrations applied by
// `ambulance-server migrate up`.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
