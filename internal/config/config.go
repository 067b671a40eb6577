// Package config handles application configuration via TOML files.
// Configuration is stored at ~/.config/kat-search/config.toml and holds the
// search endpoint settings, the qBittorrent connection and output defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Search      SearchConfig      `toml:"search"`
	QBittorrent QBittorrentConfig `toml:"qbittorrent"`
	Output      OutputConfig      `toml:"output"`
}

// SearchConfig holds settings for requests against the search endpoint
type SearchConfig struct {
	BaseURL string `toml:"base_url"`

	// WebRequestTimeout is the per-request timeout in seconds.
	WebRequestTimeout int `toml:"web_request_timeout"`

	UserAgent string `toml:"user_agent"`
}

// QBittorrentConfig holds qBittorrent Web API settings
type QBittorrentConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	SavePath string `toml:"save_path"`
}

// OutputConfig holds CLI output settings
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `toml:"format"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Search: SearchConfig{
			BaseURL:           "https://kat.cr/usearch/",
			WebRequestTimeout: 4,
		},
		QBittorrent: QBittorrentConfig{
			Host:     "localhost",
			Port:     8080,
			Username: "admin",
			Password: "adminadmin",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Search.WebRequestTimeout) * time.Second
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kat-search", "config.toml")
}

// Load reads config from disk or returns defaults
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path. A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes config to the default path
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes config to path, creating its directory
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
