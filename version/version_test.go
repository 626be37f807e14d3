package version

import "testing"

func TestGetVersion(t *testing.T) {
	defer func(c string) { gitCommit = c }(gitCommit)

	gitCommit = ""
	if got := GetVersion(); got != "1.1.0" {
		t.Errorf("GetVersion() = %q, want %q", got, "1.1.0")
	}

	gitCommit = "1a2b3c4d5e6f"
	if got := GetVersion(); got != "1.1.0+1a2b3c4d" {
		t.Errorf("GetVersion() = %q, want %q", got, "1.1.0+1a2b3c4d")
	}

	gitCommit = "1a2b"
	if got := GetVersion(); got != "1.1.0" {
		t.Errorf("GetVersion() = %q, want %q", got, "1.1.0")
	}
}
