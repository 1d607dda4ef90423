// Package config loads weekplan settings from defaults, TOML files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/weekplan/internal/domain"
)

// Backend selects the plan store.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

const (
	DefaultPlanDir = "planning"
	DefaultDBPath  = "~/.weekplan/weekplan.db"

	userConfigDir   = ".weekplan"
	userConfigName  = "config.toml"
	projectFileName = "weekplan.toml"
)

// Config holds the resolved settings.
type Config struct {
	PlanDir         string  `toml:"plan_dir"`
	Backend         Backend `toml:"backend"`
	DBPath          string  `toml:"db_path"`
	LogEnabled      bool    `toml:"log"`
	LogFile         string  `toml:"log_file"`
	PlaceholderText string  `toml:"placeholder_text"`
}

// Default returns the built-in settings: XML files in ./planning.
func Default() *Config {
	return &Config{
		PlanDir:         DefaultPlanDir,
		Backend:         BackendFile,
		DBPath:          DefaultDBPath,
		PlaceholderText: domain.DefaultTaskText,
	}
}

// Load reads ~/.weekplan/config.toml, then ./weekplan.toml, then the
// WEEKPLAN_* environment variables. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFiles(findUserConfigFile(), findProjectConfigFile())
}

// LoadFiles applies each named TOML file over the defaults, later files
// winning, then the environment. Empty names are skipped.
func LoadFiles(files ...string) (*Config, error) {
	cfg := Default()
	for _, path := range files {
		if path == "" {
			continue
		}
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Override applies command-line values. Empty values leave the setting
// unchanged.
func (c *Config) Override(planDir, backend string) error {
	if planDir != "" {
		c.PlanDir = planDir
	}
	if backend != "" {
		c.Backend = Backend(backend)
	}
	return c.finalize()
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("WEEKPLAN_DIR"); v != "" {
		cfg.PlanDir = v
	}
	if v := os.Getenv("WEEKPLAN_BACKEND"); v != "" {
		cfg.Backend = Backend(v)
	}
	if v := os.Getenv("WEEKPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WEEKPLAN_LOG"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WEEKPLAN_LOG: invalid boolean %q", v)
		}
		cfg.LogEnabled = enabled
	}
	if v := os.Getenv("WEEKPLAN_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return nil
}

func (c *Config) finalize() error {
	c.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendSQLite)
	}
	if c.PlanDir == "" {
		c.PlanDir = DefaultPlanDir
	}
	if c.PlaceholderText == "" {
		c.PlaceholderText = domain.DefaultTaskText
	}
	c.PlanDir = expandPath(c.PlanDir)
	c.DBPath = expandPath(c.DBPath)
	c.LogFile = expandPath(c.LogFile)
	if c.LogFile != "" {
		c.LogEnabled = true
	}
	return nil
}

func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, userConfigDir, userConfigName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func findProjectConfigFile() string {
	if _, err := os.Stat(projectFileName); err == nil {
		return projectFileName
	}
	return ""
}

// expandPath expands environment variables and a leading ~/.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
