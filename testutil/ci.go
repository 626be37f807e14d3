package testutil

import (
	"os"
	"testing"
)

const envUseCI = "SHA256BENCH_CI"

// SkipCI skips t unless the long-running CI suite is enabled.
func SkipCI(t *testing.T) {
	if os.Getenv(envUseCI) == "" {
		t.Skip("Skip SHA256BENCH CI")
	}
}
