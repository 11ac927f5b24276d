package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Config holds the lingodesk configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// BackendConfig holds settings for the translation/document/search API.
type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

// SessionConfig holds web session store settings.
type SessionConfig struct {
	Driver       string   `yaml:"driver"` // memory, valkey (default: memory)
	Addrs        []string `yaml:"addrs"`
	Username     string   `yaml:"username"`
	Password     string   `yaml:"password"`
	DB           int      `yaml:"db"`
	KeyPrefix    string   `yaml:"key_prefix"`
	TTLSec       int      `yaml:"ttl_sec"`
	LockTTLSec   int      `yaml:"lock_ttl_sec"`
	ReadinessSec int      `yaml:"readiness_timeout_sec"`
	CookieName   string   `yaml:"cookie_name"`
	SecureCookie bool     `yaml:"secure_cookie"`
}

// UIConfig holds limits and defaults applied to user input.
type UIConfig struct {
	DefaultTopK     int     `yaml:"default_top_k"`
	MaxTopK         int     `yaml:"max_top_k"`
	DefaultWebLimit int     `yaml:"default_web_limit"`
	MaxWebLimit     int     `yaml:"max_web_limit"`
	PreviewRunes    int     `yaml:"preview_runes"`
	NoticeTTLSec    int     `yaml:"notice_ttl_sec"`
	MaxUploadBytes  int64   `yaml:"max_upload_bytes"`
	SpeechRate      float64 `yaml:"speech_rate"`
	SpeechPitch     int     `yaml:"speech_pitch"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is like Load but falls back to Default when the file for env
// does not exist. Parse and validation errors are still returned.
func LoadOrDefault(env string) (Config, error) {
	cfg, err := Load(env)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 15
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = backend.DefaultBaseURL("")
	}
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = 30
	}
	if c.Backend.UserAgent == "" {
		c.Backend.UserAgent = "lingodesk"
	}
	if c.Session.Driver == "" {
		c.Session.Driver = "memory"
	}
	if c.Session.KeyPrefix == "" {
		c.Session.KeyPrefix = "lingodesk:"
	}
	if c.Session.TTLSec <= 0 {
		c.Session.TTLSec = 24 * 60 * 60
	}
	if c.Session.LockTTLSec <= 0 {
		c.Session.LockTTLSec = 30
	}
	if c.Session.ReadinessSec <= 0 {
		c.Session.ReadinessSec = 10
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "lingodesk_session"
	}
	if c.UI.DefaultTopK <= 0 {
		c.UI.DefaultTopK = 5
	}
	if c.UI.MaxTopK <= 0 {
		c.UI.MaxTopK = 50
	}
	if c.UI.DefaultWebLimit <= 0 {
		c.UI.DefaultWebLimit = 5
	}
	if c.UI.MaxWebLimit <= 0 {
		c.UI.MaxWebLimit = 20
	}
	if c.UI.PreviewRunes <= 0 {
		c.UI.PreviewRunes = 150
	}
	if c.UI.NoticeTTLSec <= 0 {
		c.UI.NoticeTTLSec = 5
	}
	if c.UI.MaxUploadBytes <= 0 {
		c.UI.MaxUploadBytes = 10 << 20
	}
	if c.UI.SpeechRate == 0 {
		c.UI.SpeechRate = 1.0
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute http(s) URL, got %q", c.Backend.BaseURL)
	}
	switch c.Session.Driver {
	case "memory":
	case "valkey":
		if len(c.Session.Addrs) == 0 {
			return fmt.Errorf("session.addrs is required for the valkey driver")
		}
		if c.Session.DB < 0 {
			return fmt.Errorf("session.db must not be negative, got %d", c.Session.DB)
		}
	default:
		return fmt.Errorf("session.driver must be \"memory\" or \"valkey\", got %q", c.Session.Driver)
	}
	if c.UI.DefaultTopK > c.UI.MaxTopK {
		return fmt.Errorf("ui.default_top_k (%d) exceeds ui.max_top_k (%d)", c.UI.DefaultTopK, c.UI.MaxTopK)
	}
	if c.UI.DefaultWebLimit > c.UI.MaxWebLimit {
		return fmt.Errorf("ui.default_web_limit (%d) exceeds ui.max_web_limit (%d)",
			c.UI.DefaultWebLimit, c.UI.MaxWebLimit)
	}
	if c.UI.SpeechRate < speech.MinRate || c.UI.SpeechRate > speech.MaxRate {
		return fmt.Errorf("ui.speech_rate must be between %g and %g, got %g",
			speech.MinRate, speech.MaxRate, c.UI.SpeechRate)
	}
	if c.UI.SpeechPitch < speech.MinPitch || c.UI.SpeechPitch > speech.MaxPitch {
		return fmt.Errorf("ui.speech_pitch must be between %d and %d, got %d",
			speech.MinPitch, speech.MaxPitch, c.UI.SpeechPitch)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
