package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/boxdeform/pkg/buildinfo"
)

func restoreBuildinfo(t *testing.T) {
	v, c, d := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = v, c, d })
}

func TestSetVersion(t *testing.T) {
	restoreBuildinfo(t)
	SetVersion("1.0.0", "abc123", "2024-01-01")

	if buildinfo.Version != "1.0.0" {
		t.Errorf("version = %q, want %q", buildinfo.Version, "1.0.0")
	}
	if buildinfo.Commit != "abc123" {
		t.Errorf("commit = %q, want %q", buildinfo.Commit, "abc123")
	}
	if buildinfo.Date != "2024-01-01" {
		t.Errorf("date = %q, want %q", buildinfo.Date, "2024-01-01")
	}
}

func TestSetVersionEmpty(t *testing.T) {
	restoreBuildinfo(t)
	buildinfo.Version = "v9"
	SetVersion("", "", "")

	if buildinfo.Version != "v9" {
		t.Errorf("empty version should keep %q, got %q", "v9", buildinfo.Version)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	got := strings.Join(names, ",")
	for _, want := range []string{"run", "apply", "cage", "config", "completion"} {
		if !strings.Contains(got, want) {
			t.Errorf("subcommands %q missing %q", got, want)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}
