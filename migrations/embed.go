// Package migrations embeds the schema migrations of every SQL backend.
package migrations

import "embed"

// FS holds one directory of up/down migrations per dialect: postgres and sqlite.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
