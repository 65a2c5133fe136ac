package embed

import "embed"

// DistFS holds the static results viewer served at /.
//
//go:embed all:dist
var DistFS embed.FS
