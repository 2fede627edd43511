package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath string `toml:"db_path"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// LogToStderr mirrors the log file to stderr for CLI commands. The
	// TUI never logs to the terminal.
	LogToStderr bool `toml:"log_to_stderr"`
	// Profile keeps a separate document per name in the same database.
	Profile string `toml:"profile"`

	Plan Plan `toml:"plan"`
}

type Plan struct {
	CadenceDays int `toml:"cadence_days"`
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "fittrack"), nil
}

// DefaultPath is <UserConfigDir>/fittrack/config.toml.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the configuration used when no file exists. Empty paths
// are filled in by the caller.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogToStderr: true,
		Plan:        Plan{CadenceDays: 7},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Plan.CadenceDays <= 0 {
		return Config{}, fmt.Errorf("config %s: plan.cadence_days must be positive, got %d", path, cfg.Plan.CadenceDays)
	}
	cfg.Profile = strings.TrimSpace(cfg.Profile)

	if cfg.DBPath, err = expandHome(cfg.DBPath); err != nil {
		return Config{}, err
	}
	if cfg.LogsPath, err = expandHome(cfg.LogsPath); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
