// Package buildinfo holds values stamped at link time, e.g.
//
//	go build -ldflags "-X trajetviz.dev/internal/buildinfo.CommitHash=$(git rev-parse HEAD)"
package buildinfo

var (
	Version       = "dev"
	CommitHash    = ""
	CommitTime    = ""
	CommitMessage = ""
	Branch        = ""
	BuildTime     = ""
	Dirty         = "false"
	Host          = ""
	UserName      = ""
	UserEmail     = ""
	RemoteURL     = ""
)

// ShortHash returns the first seven characters of CommitHash, or "unknown".
func ShortHash() string {
	if len(CommitHash) >= 7 {
		return CommitHash[:7]
	}
	return "unknown"
}
