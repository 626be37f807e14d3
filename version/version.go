package version

import "fmt"

const (
	majorVersion uint32 = 1
	minorVersion uint32 = 1
	patchVersion uint32 = 0
)

var (
	// gitCommit is set at build time with
	// -ldflags "-X github.com/dmitryelj/SHA256-Benchmark/version.gitCommit=<sha>".
	gitCommit string
	ver       *version
)

type version struct {
	majorVersion uint32
	minorVersion uint32
	patchVersion uint32
}

// Format version to "<majorVersion>.<minorVersion>.<patchVersion>[+<gitCommit>]",
// like "1.0.0", or "1.0.0+1a2b3c4d".
func (v version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.majorVersion, v.minorVersion, v.patchVersion)
	if len(gitCommit) >= 8 {
		s += "+" + gitCommit[:8]
	}
	return s
}

func GetVersion() string {
	return ver.String()
}

func init() {
	ver = &version{
		majorVersion: majorVersion,
		minorVersion: minorVersion,
		patchVersion: patchVersion,
	}
}
