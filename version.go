package bridge

import "fmt"

// Release version, updated on every tagged release.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

var version = fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit is set by build flags.
var GitCommit = ""

// Version returns the release version followed by the commit the binary
// was built from, if known.
func Version() string {
	if GitCommit != "" {
		return version + " " + GitCommit
	}
	return version
}
