package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information of the esparse CLI, overridable with -ldflags -X.
var (
	// Version is the semantic version.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Plain returns Version as is.
func Plain() string { return Version }

// Colored paints the major, minor and patch numbers of Version. Anything
// that is not a dotted triple is returned unchanged.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(Version, "-+"); i >= 0 {
		core, suffix = Version[:i], Version[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	majorColor.EnableColor()
	minorColor.EnableColor()
	patchColor.EnableColor()
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}
