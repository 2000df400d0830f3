package migrations

import "embed"

// Files holds the versioned schema migrations compiled into the binary.
// The runner in internal/db applies them in filename order.
//
//go:embed *.sql
var Files embed.FS
