// Package version holds build metadata for dominant, injected at build time:
//
//	go build -ldflags "-X github.com/jmylchreest/dominant/internal/version.Version=1.2.3 \
//	  -X github.com/jmylchreest/dominant/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/dominant/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without ldflags fall back to the VCS stamp recorded by the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

var (
	// Version is the semantic version of the application.
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = unknown

	// Date is the build date in RFC3339 format.
	Date = unknown
)

// Info holds all version information for the application.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == unknown:
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == unknown:
				info.Date = s.Value
			}
		}
	}

	return info
}

// String returns a human-readable version string.
func String() string {
	return GetInfo().String()
}

func (i Info) String() string {
	if i.Commit == unknown || i.Date == unknown {
		return fmt.Sprintf("dominant version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("dominant version %s (commit: %s, built: %s, %s, %s)",
		i.Version, shortCommit(i.Commit), i.Date, i.GoVersion, i.Platform)
}

// Short returns the bare version, as used by --version.
func Short() string {
	return Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
