// Package version reports the build's commit.
package version

// GitSHA is set at build time:
//
//	go build -ldflags "-X github.com/abdullathedruid/cdeck/internal/version.GitSHA=$(git rev-parse --short HEAD)"
var GitSHA = "dev"

// Short returns a short version string suitable for display.
func Short() string {
	return GitSHA
}

// String is the line printed by `cdeck version`.
func String() string {
	return "cdeck " + GitSHA
}
