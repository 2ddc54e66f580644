// Package config loads cjslex.toml and the CJSLEX_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
)

// FileName is the project configuration file looked up from the working directory upwards.
const FileName = "cjslex.toml"

// Environment overrides. Real environment variables win over a .env file.
const (
	EnvJobs     = "CJSLEX_JOBS"
	EnvFormat   = "CJSLEX_FORMAT"
	EnvCacheDir = "CJSLEX_CACHE_DIR"
	EnvNoCache  = "CJSLEX_NO_CACHE"
)

type Config struct {
	// Path is the cjslex.toml that was read, "" when defaults are used.
	Path string `toml:"-"`
	// Root is the directory relative paths are resolved against.
	Root string `toml:"-"`

	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

type ScanConfig struct {
	Include        []string `toml:"include"`
	Exclude        []string `toml:"exclude"`
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

type OutputConfig struct {
	Format string `toml:"format"` // pretty|json|msgpack|short
	Color  string `toml:"color"`  // auto|on|off
}

type CacheConfig struct {
	Enabled       bool   `toml:"enabled"`
	MemoryEntries int    `toml:"memory_entries"`
	Dir           string `toml:"dir"`
}

// Default returns the configuration used when no cjslex.toml exists.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Include:        []string{"**/*.js", "**/*.cjs"},
			Exclude:        []string{"**/*.min.js"},
			MaxDiagnostics: 100,
		},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
		Cache:  CacheConfig{Enabled: true, MemoryEntries: 4096},
	}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// StartDir is where the cjslex.toml search starts; "" means ".".
	StartDir string
	// ConfigPath skips the search and reads this file.
	ConfigPath string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Load reads defaults, then cjslex.toml, then .env and the environment.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()
	start := opts.StartDir
	if start == "" {
		start = "."
	}
	root, err := filepath.Abs(start)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	cfg.Root = root

	path := opts.ConfigPath
	if path == "" {
		found, ok, err := Find(start)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readDotEnv(filepath.Join(cfg.Root, ".env"))
	if err != nil {
		return Config{}, err
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find walks up from startDir looking for cjslex.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = abs
	cfg.Root = filepath.Dir(abs)
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(cfg.Root, cfg.Cache.Dir)
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	if v := lookup(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		c.Scan.Jobs = n
	}
	if v := lookup(EnvFormat); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := lookup(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := lookup(EnvNoCache); v != "" {
		off, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoCache, err)
		}
		if off {
			c.Cache.Enabled = false
		}
	}
	return nil
}

// Validate checks enumerations, limits and glob syntax.
func (c Config) Validate() error {
	switch c.Output.Format {
	case "pretty", "json", "msgpack", "short":
	default:
		return fmt.Errorf("invalid output format %q (expected: pretty|json|msgpack|short)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color mode %q (expected: auto|on|off)", c.Output.Color)
	}
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("scan.jobs must be >= 0, got %d", c.Scan.Jobs)
	}
	if c.Scan.MaxDiagnostics < 0 {
		return fmt.Errorf("scan.max_diagnostics must be >= 0, got %d", c.Scan.MaxDiagnostics)
	}
	if c.Cache.MemoryEntries < 0 {
		return fmt.Errorf("cache.memory_entries must be >= 0, got %d", c.Cache.MemoryEntries)
	}
	for _, p := range append(append([]string(nil), c.Scan.Include...), c.Scan.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// CacheDir returns the on-disk cache directory: cache.dir, or the user
// cache directory + "/cjslex".
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("no cache directory: %w", err)
	}
	return filepath.Join(base, "cjslex"), nil
}
