package postgresql

import _ "embed"

// Schema creates every table the repositories read and write. It is
// idempotent.
//
//go:embed schema.sql
var Schema string
