// Package version provides build version information for sitenav.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/sitenav/internal/version.Version=v1.0.0 \
//	  -X github.com/jpl-au/sitenav/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/sitenav/internal/version.BuildTime=2026-01-15T10:30:00Z"
//
// Edition and BaseVersion are only set by downstream builds that embed
// sitenav, e.g. a docs platform shipping its own descriptor.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build information. Set via ldflags at build time.
var (
	Edition     = ""        // Only set for non-standard editions (e.g., "docs")
	Version     = "dev"     // Version tag (e.g., "v1.0.0")
	BaseVersion = ""        // Base sitenav version (downstream builds only)
	GitCommit   = "unknown" // Short git commit hash
	BuildTime   = "unknown" // RFC3339 build timestamp
)

// Info holds structured version information.
type Info struct {
	Edition     string `json:"edition"`      // Edition label (empty for standard builds)
	BuildTag    string `json:"build_tag"`    // Version tag (e.g., "v1.0.0" or "dev")
	BaseVersion string `json:"base_version"` // Base sitenav version (downstream builds only)
	BuildTime   string `json:"build_time"`   // RFC3339 build timestamp
	GitCommit   string `json:"git_commit"`   // Short git commit hash
	GoVersion   string `json:"go_version"`   // Go runtime version
	Platform    string `json:"platform"`     // OS and architecture (e.g., "darwin arm64")
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Edition:     Edition,
		BuildTag:    Version,
		BaseVersion: BaseVersion,
		BuildTime:   BuildTime,
		GitCommit:   GitCommit,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	if i.Edition != "" && i.Edition != "standard" {
		fmt.Fprintf(&b, "Edition:      %s\n", i.Edition)
	}
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	if i.BaseVersion != "" {
		fmt.Fprintf(&b, "Base Version: %s\n", i.BaseVersion)
	}
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	return b.String()
}

// Short returns just the version string (e.g., "v1.0.0" or "dev").
func Short() string {
	return Version
}
