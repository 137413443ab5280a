package session

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the ambient per-project configuration a `.ruchy.yaml` file
// and the RUCHY_* environment namespace both feed into, matching the
// teacher's Repl struct (repl/repl.go) in spirit — a small, flat bag of
// settings the driver builds once and threads through — but sourced from
// a project file plus environment overrides instead of constructor
// arguments, since a toolchain (unlike an embedded REPL banner) needs to
// pick these up without a recompile.
type Config struct {
	TimeoutMS    int    `yaml:"timeout_ms"`
	StackDepth   int    `yaml:"stack_depth"`
	HistoryPath  string `yaml:"history_path"`
	SnapshotPath string `yaml:"snapshot_path"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultConfig matches eval.DefaultLimits() (100ms / 1000 frames) plus
// the REPL's default history/snapshot locations under the user's home
// directory.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()

	return Config{
		TimeoutMS:    100,
		StackDepth:   1000,
		HistoryPath:  filepath.Join(home, ".ruchy_history"),
		SnapshotPath: filepath.Join(home, ".ruchy_snapshot.json"),
		LogLevel:     "info",
	}
}

// LoadConfig reads dir/.ruchy.yaml if present (silently defaulting when
// it is absent — an optional project file, not a required one) and then
// applies RUCHY_* environment overrides, which always win: the
// environment is the operator's last word, the project file the
// project's default.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, ".ruchy.yaml")
	data, err := os.ReadFile(path)
	if err == nil {
		if uerr := yaml.Unmarshal(data, &cfg); uerr != nil {
			return cfg, uerr
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUCHY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutMS = n
		}
	}
	if v := os.Getenv("RUCHY_STACK_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StackDepth = n
		}
	}
	if v := os.Getenv("RUCHY_HISTORY_PATH"); v != "" {
		cfg.HistoryPath = v
	}
	if v := os.Getenv("RUCHY_SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
	if v := os.Getenv("RUCHY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Limits returns the loaded config's call-depth bound and per-input
// deadline, the two fields of eval.Limits the config controls.
func (c Config) Limits() (maxDepth int, deadline time.Duration) {
	return c.StackDepth, time.Duration(c.TimeoutMS) * time.Millisecond
}
