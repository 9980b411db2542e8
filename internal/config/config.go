package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/glabrego/gemini-cli/internal/logging"
)

const (
	defaultHomepage     = "gemini://geminiprotocol.net/"
	defaultDBPath       = "gemini.db"
	defaultLogLevel     = "info"
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 5
	defaultConfigPath   = "~/.config/gemini-cli/config.toml"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	Homepage            string
	DBPath              string
	LogPath             string
	LogLevel            string
	Timeout             time.Duration
	AutoFollowRedirects bool
	MaxRedirects        int
	MaxResponseBytes    int64
}

// fileConfig mirrors the TOML file. Pointers tell absent keys apart from
// zero values.
type fileConfig struct {
	Homepage            *string `toml:"homepage"`
	DBPath              *string `toml:"db_path"`
	LogPath             *string `toml:"log_path"`
	LogLevel            *string `toml:"log_level"`
	Timeout             *string `toml:"timeout"`
	AutoFollowRedirects *bool   `toml:"auto_follow_redirects"`
	MaxRedirects        *int    `toml:"max_redirects"`
	MaxResponseBytes    *int64  `toml:"max_response_bytes"`
}

func Defaults() Config {
	return Config{
		Homepage:     defaultHomepage,
		DBPath:       defaultDBPath,
		LogLevel:     defaultLogLevel,
		Timeout:      defaultTimeout,
		MaxRedirects: defaultMaxRedirects,
	}
}

// LoadFromEnv layers the config file named by GEMINI_CONFIG (or the default
// location) and then the GEMINI_* variables over the defaults.
func LoadFromEnv() (Config, error) {
	path := os.Getenv("GEMINI_CONFIG")
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	cfg, err := LoadFile(Defaults(), path)
	if err != nil {
		return Config{}, err
	}
	cfg, err = applyEnv(cfg)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the TOML file at path onto base. A missing file leaves
// base untouched.
func LoadFile(base Config, path string) (Config, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	cfg := base
	if fc.Homepage != nil {
		cfg.Homepage = strings.TrimSpace(*fc.Homepage)
	}
	if fc.DBPath != nil {
		cfg.DBPath = mustExpand(*fc.DBPath)
	}
	if fc.LogPath != nil {
		cfg.LogPath = mustExpand(*fc.LogPath)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*fc.LogLevel)
	}
	if fc.Timeout != nil {
		d, err := parseDuration(*fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if fc.AutoFollowRedirects != nil {
		cfg.AutoFollowRedirects = *fc.AutoFollowRedirects
	}
	if fc.MaxRedirects != nil {
		cfg.MaxRedirects = *fc.MaxRedirects
	}
	if fc.MaxResponseBytes != nil {
		cfg.MaxResponseBytes = *fc.MaxResponseBytes
	}
	return cfg, nil
}

func applyEnv(cfg Config) (Config, error) {
	if v, ok := lookup("GEMINI_HOMEPAGE"); ok {
		cfg.Homepage = v
	}
	if v, ok := lookup("GEMINI_DB_PATH"); ok {
		cfg.DBPath = mustExpand(v)
	}
	if v, ok := lookup("GEMINI_LOG_PATH"); ok {
		cfg.LogPath = mustExpand(v)
	}
	if v, ok := lookup("GEMINI_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("GEMINI_TIMEOUT"); ok {
		d, err := parseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("GEMINI_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v, ok := lookup("GEMINI_AUTO_FOLLOW_REDIRECTS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("GEMINI_AUTO_FOLLOW_REDIRECTS must be a boolean: %s", v)
		}
		cfg.AutoFollowRedirects = b
	}
	if v, ok := lookup("GEMINI_MAX_REDIRECTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("GEMINI_MAX_REDIRECTS must be an integer: %s", v)
		}
		cfg.MaxRedirects = n
	}
	if v, ok := lookup("GEMINI_MAX_RESPONSE_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("GEMINI_MAX_RESPONSE_BYTES must be an integer: %s", v)
		}
		cfg.MaxResponseBytes = n
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Homepage == "" {
		return errors.New("homepage is required")
	}
	u, err := url.Parse(c.Homepage)
	if err != nil {
		return fmt.Errorf("homepage is not a valid URL: %w", err)
	}
	if u.Scheme != "gemini" || u.Host == "" {
		return fmt.Errorf("homepage must be a gemini:// URL: %s", c.Homepage)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must not be negative: %d", c.MaxRedirects)
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("max response bytes must not be negative: %d", c.MaxResponseBytes)
	}
	return nil
}

// lookup treats set-but-blank variables as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// parseDuration also accepts a bare "0".
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return strings.TrimSpace(path)
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return trimmed, nil
}
