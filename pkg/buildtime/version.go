// Package buildtime holds values fixed when the binaries are built.
//
// The release build rewrites the files VERSION and revision.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

// Version is the release and the commit which feastd and feastctl are built from,
// like "1.2.0 (commit: 0a1b2c3)".
func Version() string {
	return strings.TrimSpace(version) + " (commit: " + strings.TrimSpace(revision) + ")"
}
