// Package config loads dealgrid configuration from defaults, config files
// and command line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/dealgrid/internal/prefs"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Store       string `json:"store"`
	StorePath   string `json:"store_path,omitempty"`
	RedisAddr   string `json:"redis_addr,omitempty"`
	RedisPrefix string `json:"redis_prefix,omitempty"`
	StateKey    string `json:"state_key"`
	Dataset     string `json:"dataset,omitempty"`
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	StorePathAbs string `json:"-"` // Absolute store path, empty for memory and redis
	DatasetAbs   string `json:"-"` // Absolute dataset path, empty for the bundled sample

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string `json:"global,omitempty"`  // Path to global config if loaded, empty otherwise
	Project string `json:"project,omitempty"` // Path to project config if loaded, empty otherwise
}

// Log levels and formats accepted in log_level and log_format.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"console", "json"}
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Store:     prefs.BackendFile,
		StorePath: filepath.Join(".dealgrid", "state.json"),
		StateKey:  prefs.DefaultKey,
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// FileName is the default project config file name.
const FileName = ".dealgrid.json"

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/dealgrid/config.json if set, otherwise ~/.config/dealgrid/config.json.
// Returns empty string if home directory cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "dealgrid", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "dealgrid", "config.json")
	}

	return ""
}

// Overrides are values given on the command line. Empty fields do not
// override.
type Overrides struct {
	Store     string
	StorePath string
	Dataset   string
	LogLevel  string
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Overrides         // per-field flag values
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/dealgrid/config.json or $XDG_CONFIG_HOME/dealgrid/config.json)
// 3. Project config file at default location (.dealgrid.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, gPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = gPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg = merge(cfg, Config{
		Store:     input.Overrides.Store,
		StorePath: input.Overrides.StorePath,
		Dataset:   input.Overrides.Dataset,
		LogLevel:  input.Overrides.LogLevel,
	})

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	if cfg.Store == prefs.BackendFile || cfg.Store == prefs.BackendSQLite {
		cfg.StorePathAbs = absolute(workDir, cfg.StorePath)
	}

	if cfg.Dataset != "" {
		cfg.DatasetAbs = absolute(workDir, cfg.Dataset)
	}

	return cfg, nil
}

func absolute(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// loadGlobal loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.dealgrid.json) or an explicit
// config file. Returns the config, the path if loaded, and any error.
func loadProject(workDir, configPath string) (Config, string, error) {
	var (
		cfgFile   string
		mustExist bool
	)

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = absolute(workDir, configPath)
		mustExist = true

		if _, statErr := os.Stat(cfgFile); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, FileName)
	}

	cfg, loaded, err := loadFile(cfgFile, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, cfgFile, nil
}

// loadFile loads a config file. If mustExist is false, missing files return
// zero config.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&base.Store, overlay.Store)
	set(&base.StorePath, overlay.StorePath)
	set(&base.RedisAddr, overlay.RedisAddr)
	set(&base.RedisPrefix, overlay.RedisPrefix)
	set(&base.StateKey, overlay.StateKey)
	set(&base.Dataset, overlay.Dataset)
	set(&base.LogLevel, overlay.LogLevel)
	set(&base.LogFormat, overlay.LogFormat)

	return base
}

func validate(cfg Config) error {
	if !prefs.ValidBackend(cfg.Store) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrStoreInvalid, cfg.Store, prefs.Backends)
	}

	if (cfg.Store == prefs.BackendFile || cfg.Store == prefs.BackendSQLite) && cfg.StorePath == "" {
		return fmt.Errorf("%w: store %s", ErrStorePathEmpty, cfg.Store)
	}

	if cfg.Store == prefs.BackendRedis && cfg.RedisAddr == "" {
		return ErrRedisAddrEmpty
	}

	if !slices.Contains(LogLevels, cfg.LogLevel) {
		return fmt.Errorf("%w: %q", ErrLogLevelInvalid, cfg.LogLevel)
	}

	if !slices.Contains(LogFormats, cfg.LogFormat) {
		return fmt.Errorf("%w: %q", ErrLogFormatInvalid, cfg.LogFormat)
	}

	return nil
}
