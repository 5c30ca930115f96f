// Package migrations expone el esquema SQL versionado (formato golang-migrate).
package migrations

import "embed"

// FS contiene los archivos NNNNNN_nombre.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
