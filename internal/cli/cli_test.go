package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"serve":   false,
		"inspect": false,
		"source":  false,
		"search":  false,
		"pypi":    false,
		"graph":   false,
		"cache":   false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(t.TempDir(), "liblens.toml")
	if err := os.WriteFile(cfgPath, []byte("cache_dir = "+quote(dir)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}

	entries, err := os.ReadDir(sub)
	if err == nil && len(entries) > 0 {
		t.Errorf("cache entries left behind: %v", entries)
	}
}

func TestCacheInfo_EmptyDir(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "liblens.toml")
	if err := os.WriteFile(cfgPath, []byte("cache_dir = "+quote(t.TempDir())+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "info"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("cache info failed: %v", err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func quote(s string) string { return "\"" + s + "\"" }
