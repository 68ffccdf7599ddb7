package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the guard document looked up on every search path entry.
const ConfigFileName = "human.md"

type Config struct {
	HomeDir     string
	GuardDir    string
	LedgerPath  string
	StatePath   string
	HistoryPath string
	ConfigPaths []string
	LogLevel    string
}

// New resolves guard paths for a working directory. Environment overrides,
// then ~/.claude/human-guard.env, win over the ~/.claude defaults.
func New(workDir string) (Config, error) {
	if workDir == "" {
		return Config{}, fmt.Errorf("working directory is required")
	}
	defaultHome := ""
	if userHome, err := os.UserHomeDir(); err == nil {
		defaultHome = filepath.Join(userHome, ".claude")
	}
	envFile := ""
	if defaultHome != "" {
		envFile = filepath.Join(defaultHome, EnvFileName)
	}
	vars, err := LoadEnv(envFile)
	if err != nil {
		return Config{}, err
	}
	home := vars.Home
	if home == "" {
		home = defaultHome
	}
	if home == "" {
		return Config{}, fmt.Errorf("resolve home dir: set HUMAN_GUARD_HOME")
	}
	cfg := FromHome(home)
	cfg.LogLevel = vars.LogLevel
	cfg.ConfigPaths = SearchPaths(workDir, home, vars.ConfigPath)
	return cfg, nil
}

// FromHome lays out every guard file under home. ConfigPaths only holds the
// global document.
func FromHome(home string) Config {
	guardDir := filepath.Join(home, "human-guard")
	return Config{
		HomeDir:     home,
		GuardDir:    guardDir,
		LedgerPath:  filepath.Join(home, "session-log.json"),
		StatePath:   filepath.Join(home, "session-state.json"),
		HistoryPath: filepath.Join(guardDir, "history.db"),
		ConfigPaths: []string{filepath.Join(home, ConfigFileName)},
		LogLevel:    "warn",
	}
}

// SearchPaths orders config candidates: explicit override, working dir,
// enclosing repository root, then the global file.
func SearchPaths(workDir, home, override string) []string {
	paths := make([]string, 0, 4)
	if override != "" {
		paths = append(paths, override)
	}
	paths = append(paths, filepath.Join(workDir, ConfigFileName))
	if root, ok := FindRepoRoot(workDir); ok && filepath.Clean(root) != filepath.Clean(workDir) {
		paths = append(paths, filepath.Join(root, ConfigFileName))
	}
	return append(paths, filepath.Join(home, ConfigFileName))
}

// FindRepoRoot walks up from dir to the first directory holding .git.
func FindRepoRoot(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
