package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFileName is the optional dotenv file read from ~/.claude.
const EnvFileName = "human-guard.env"

// Env holds the environment overrides recognized by the guard.
type Env struct {
	Home       string `env:"HUMAN_GUARD_HOME"`
	ConfigPath string `env:"HUMAN_GUARD_CONFIG"`
	LogLevel   string `env:"HUMAN_GUARD_LOG_LEVEL" envDefault:"warn"`
}

// LoadEnv parses overrides from the process environment. Variables the
// process leaves unset are taken from the dotenv file at path. A missing or
// malformed file is ignored so a broken override never blocks a session.
func LoadEnv(path string) (Env, error) {
	environment := env.ToMap(os.Environ())
	fileVars, err := readEnvFile(path)
	switch {
	case err == nil:
		for key, value := range fileVars {
			if _, set := environment[key]; !set {
				environment[key] = value
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		slog.Debug("ignore unreadable env file", "path", path, "error", err)
	}

	vars := Env{}
	if err := env.ParseWithOptions(&vars, env.Options{Environment: environment}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return vars, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	return godotenv.Read(path)
}
