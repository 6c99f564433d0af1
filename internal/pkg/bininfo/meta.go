// Version information is injected at build time:
//
//	go build -ldflags "-X exusiai.dev/mapbook/internal/pkg/bininfo.Version=v1.2.0 -X exusiai.dev/mapbook/internal/pkg/bininfo.BuildTime=$(date -u +%FT%TZ)"
package bininfo

import "runtime/debug"

var (
	// Version is the SemVer version of the binary. Falls back to the module version recorded by
	// the go toolchain when not injected.
	Version = ""

	// BuildTime is the time at which the application was built.
	BuildTime = ""
)

// Describe renders the version and build time for the CLI.
func Describe() string {
	version := Version
	if version == "" {
		version = "(devel)"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	if BuildTime == "" {
		return version
	}
	return version + " (built at " + BuildTime + ")"
}
