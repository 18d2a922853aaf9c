package utils

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a pretty colored version string for terminal printing.
// Prerelease versions get a dimmed suffix
func PrettyVersion(version string) string {
	if version == "" {
		return gchalk.Gray("none")
	}
	// we trim first to avoid broken colors
	if len(version) >= 22 {
		version = version[:18] + " …"
	}

	parsed, err := semver.NewVersion(version)
	if err != nil || parsed.Prerelease() == "" {
		return version
	}
	core := fmt.Sprintf("%d.%d.%d", parsed.Major(), parsed.Minor(), parsed.Patch())
	return core + gchalk.Dim("-"+parsed.Prerelease())
}
