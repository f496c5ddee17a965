// Package migrations holds the schema of the client's local session store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
