// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the DeepL API key goes to the
// OS keychain or is taken from the environment.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"csvlate/cli/internal/xdg"
)

// DefaultAPIURL is the DeepL endpoint used when no override is configured.
const DefaultAPIURL = "https://api-free.deepl.com/v2/translate"

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel      string `json:"log_level"`
	DefaultTarget string `json:"default_target"`
	APIURL        string `json:"api_url"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Defaults (API key loaded from env/keychain, not config)
			c.LogLevel = "info"
			c.DefaultTarget = "HU"
			c.APIURL = DefaultAPIURL
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
