package migrations

import "embed"

// FS enthält die SQL-Migrationen für golang-migrate (iofs-Quelle).
//
//go:embed *.sql
var FS embed.FS
