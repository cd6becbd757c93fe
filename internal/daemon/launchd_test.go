package daemon

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGeneratePlist(t *testing.T) {
	plist, err := GeneratePlist(PlistConfig{
		BinaryPath:       "/usr/local/bin/chartthread",
		LogPath:          "/tmp/logs",
		WorkingDirectory: "/Users/me/.config/chartthread",
	})
	if err != nil {
		t.Fatalf("GeneratePlist: %v", err)
	}

	for _, want := range []string{
		"<string>" + LaunchdLabel + "</string>",
		"<string>/usr/local/bin/chartthread</string>",
		"<string>daemon</string>",
		"<string>/tmp/logs/chartthread.log</string>",
		"<string>/Users/me/.config/chartthread</string>",
	} {
		if !strings.Contains(plist, want) {
			t.Errorf("plist missing %q", want)
		}
	}
}

func TestGetPlistPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	path, err := GetPlistPath()
	if err != nil {
		t.Fatalf("GetPlistPath: %v", err)
	}
	want := filepath.Join("/home/test", "Library", "LaunchAgents", "com.chartthread.daemon.plist")
	if path != want {
		t.Errorf("GetPlistPath() = %s, want %s", path, want)
	}
}
