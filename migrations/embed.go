// Package migrations embeds the catalog schema for database.RunMigrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
