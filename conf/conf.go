package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config is the client configuration: a TOML file under the user
// config dir, with environment overrides on top for dev setups.
type Config struct {
	ApiBaseURL      string `toml:"api_base_url"`
	PollIntervalMS  int    `toml:"poll_interval_ms"`
	PollMaxAttempts int    `toml:"poll_max_attempts"`
	CacheDir        string `toml:"cache_dir"`
}

func Default() Config {
	cacheDir := ""
	if base, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(base, "freshtrack")
	}
	return Config{
		ApiBaseURL:      "http://localhost:8080",
		PollIntervalMS:  2000,
		PollMaxAttempts: 30,
		CacheDir:        cacheDir,
	}
}

// DefaultPath is where the client looks for its config file.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "freshtrack", "config.toml")
}

// Load reads the config file at path (missing file is fine, defaults
// apply) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	if v := os.Getenv("FRESHTRACK_API_URL"); v != "" {
		cfg.ApiBaseURL = v
	}
	if v := os.Getenv("FRESHTRACK_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollIntervalMS = n
		}
	}
	if v := os.Getenv("FRESHTRACK_POLL_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollMaxAttempts = n
		}
	}
	if v := os.Getenv("FRESHTRACK_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
}
