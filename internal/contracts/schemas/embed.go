package schemas

import "embed"

// FS содержит все JSON-схемы событий, вшитые в бинарник.
//
//go:embed events
var FS embed.FS
