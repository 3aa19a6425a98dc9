// Package version holds build information injected at link time via
// -ldflags "-X github.com/opdss/excelsvc/version.Version=...".
package version

import "fmt"

var (
	// Version is the release version of the binary.
	Version = "0.1.0"
	// CommitHash is the git commit the binary was built from.
	CommitHash = ""
	// Timestamp is the build time in RFC3339.
	Timestamp = ""
)

// Info describes one build of the service.
type Info struct {
	Version    string
	CommitHash string
	Timestamp  string
}

// Build is the build information of the running binary.
var Build = Info{
	Version:    Version,
	CommitHash: CommitHash,
	Timestamp:  Timestamp,
}

func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nTimestamp: %s", i.Version, i.CommitHash, i.Timestamp)
}
