// Package buildinfo carries version identifiers stamped at build time.
package buildinfo

// Set via -ldflags, e.g.
// go build -ldflags "-X solpanel/internal/buildinfo.Version=v0.3.0".
var (
	Version = "dev"
	Commit  = "unknown"
)

// Short returns a compact identifier for the boot banner and log lines.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
