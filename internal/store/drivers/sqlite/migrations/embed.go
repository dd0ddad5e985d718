// Package migrations holds the embedded SQL migration files applied at
// startup by the sqlite driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
