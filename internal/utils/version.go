package utils

import (
	"runtime/debug"
	"strings"
)

// DevVersion is reported by builds without release version information.
const DevVersion = "dev"

// version will be set by GoReleaser during builds
var version string

// GetVersion returns the ldflags version, else the module version from build
// info, without a leading "v".
func GetVersion() string {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v = info.Main.Version
		}
	}
	if v == "" || v == "(devel)" {
		return DevVersion
	}
	return strings.TrimPrefix(v, "v")
}
