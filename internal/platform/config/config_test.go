package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"humanguard/internal/platform/config"
)

func TestNewHonorsHomeOverride(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HUMAN_GUARD_HOME", home)
	t.Setenv("HUMAN_GUARD_CONFIG", "")
	t.Setenv("HUMAN_GUARD_LOG_LEVEL", "debug")

	cfg, err := config.New(work)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.LedgerPath != filepath.Join(home, "session-log.json") {
		t.Fatalf("unexpected ledger path %s", cfg.LedgerPath)
	}
	if cfg.GuardDir != filepath.Join(home, "human-guard") {
		t.Fatalf("unexpected guard dir %s", cfg.GuardDir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %s", cfg.LogLevel)
	}
	last := cfg.ConfigPaths[len(cfg.ConfigPaths)-1]
	if last != filepath.Join(home, config.ConfigFileName) {
		t.Fatalf("global config must be searched last, got %v", cfg.ConfigPaths)
	}
}

func TestNewRequiresWorkDir(t *testing.T) {
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty work dir should fail")
	}
}

func TestSearchPathsIncludesRepoRoot(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	paths := config.SearchPaths(nested, "/home/x/.claude", "/etc/guard.md")
	want := []string{
		"/etc/guard.md",
		filepath.Join(nested, config.ConfigFileName),
		filepath.Join(root, config.ConfigFileName),
		filepath.Join("/home/x/.claude", config.ConfigFileName),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestSearchPathsSkipsRepoRootEqualToWorkDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	paths := config.SearchPaths(root, "/h", "")
	if len(paths) != 2 {
		t.Fatalf("expected cwd and global only, got %v", paths)
	}
}

func TestLoadEnvFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, config.EnvFileName)
	content := "HUMAN_GUARD_HOME=/from/file\nHUMAN_GUARD_LOG_LEVEL=info\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HUMAN_GUARD_LOG_LEVEL", "error")
	t.Setenv("HUMAN_GUARD_HOME", "")
	if err := os.Unsetenv("HUMAN_GUARD_HOME"); err != nil {
		t.Fatalf("unset home: %v", err)
	}

	vars, err := config.LoadEnv(envFile)
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if vars.Home != "/from/file" {
		t.Fatalf("home should come from the env file, got %q", vars.Home)
	}
	if vars.LogLevel != "error" {
		t.Fatalf("process env must win over the file, got %q", vars.LogLevel)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	t.Setenv("HUMAN_GUARD_LOG_LEVEL", "")
	if err := os.Unsetenv("HUMAN_GUARD_LOG_LEVEL"); err != nil {
		t.Fatalf("unset level: %v", err)
	}

	vars, err := config.LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
	if vars.LogLevel != "warn" {
		t.Fatalf("expected default warn level, got %q", vars.LogLevel)
	}
}

func TestLoadEnvIgnoresMalformedFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), config.EnvFileName)
	if err := os.WriteFile(envFile, []byte("HUMAN_GUARD_LOG_LEVEL='unterminated\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HUMAN_GUARD_LOG_LEVEL", "")
	if err := os.Unsetenv("HUMAN_GUARD_LOG_LEVEL"); err != nil {
		t.Fatalf("unset level: %v", err)
	}

	vars, err := config.LoadEnv(envFile)
	if err != nil {
		t.Fatalf("malformed env file must not fail: %v", err)
	}
	if vars.LogLevel != "warn" {
		t.Fatalf("expected default warn level, got %q", vars.LogLevel)
	}
}
