// Package version exposes build metadata injected at link time:
//
//	-X 'github.com/compozy/toolkit/pkg/version.Version=v1.0.0'
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "none"
	BuildDate  = "unknown"
)

// Info is the build metadata of the running binary.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

func Get() Info {
	return Info{Version: Version, CommitHash: CommitHash, BuildDate: BuildDate}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildDate)
}
