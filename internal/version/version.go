// Package version exposes build metadata stamped in via -ldflags.
package version

//nolint:revive // Overwritten by the linker at release builds.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
