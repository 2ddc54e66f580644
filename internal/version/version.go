package version

import (
	"runtime"

	"github.com/fatih/color"
)

// Version information for the cjslex CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionRestColor  = color.New(color.FgGreen)
)

// Info is the machine-readable form printed by `cjslex version --format json`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

// Current returns the build metadata of the running binary.
func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// Colored renders Version with the major component highlighted.
// fatih/color drops the escapes when color is disabled.
func Colored() string {
	major, rest := Version, ""
	for i := 0; i < len(Version); i++ {
		if Version[i] == '.' {
			major, rest = Version[:i], Version[i:]
			break
		}
	}
	return versionMajorColor.Sprint(major) + versionRestColor.Sprint(rest)
}
