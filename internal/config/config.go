package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the binary looks for its configuration file
const DefaultPath = "~/.config/popcorn/config.yaml"

// ErrMissingAPIKey is returned when no movie database credential is configured
var ErrMissingAPIKey = errors.New("OMDb API key is required. Get one from https://www.omdbapi.com/apikey.aspx")

// Config represents the application configuration
type Config struct {
	OMDB    OMDBConfig    `yaml:"omdb"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// OMDBConfig holds movie database API configuration
type OMDBConfig struct {
	APIKey         string `yaml:"api_key" validate:"required"`
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=1"`
}

// SearchConfig holds search box settings
type SearchConfig struct {
	MinQueryLength int `yaml:"min_query_length" validate:"gte=0"`
}

// StorageConfig holds the local persistence settings
type StorageConfig struct {
	Path            string `yaml:"path" validate:"required"`
	Key             string `yaml:"key" validate:"required"`
	Watch           *bool  `yaml:"watch"`
	WatchDebounceMs int    `yaml:"watch_debounce_ms" validate:"gte=1"`
}

// UIConfig holds terminal UI settings
type UIConfig struct {
	MaxRating int    `yaml:"max_rating" validate:"gte=1,lte=100"`
	Title     string `yaml:"title" validate:"required"`
}

// LoggingConfig holds log sink settings
type LoggingConfig struct {
	File   string `yaml:"file" validate:"required"`
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Timeout returns the per-request deadline for the movie database
func (c OMDBConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WatchEnabled reports whether the store file should be watched for external writes
func (c StorageConfig) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// WatchDebounce returns the quiet period applied to store file events
func (c StorageConfig) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// Default returns a configuration with every optional field filled in.
// The API key is taken from OMDB_API_KEY when set.
func Default() *Config {
	cfg := &Config{}
	cfg.OMDB.APIKey = os.Getenv("OMDB_API_KEY")
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	// Read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.OMDB.APIKey == "" {
		cfg.OMDB.APIKey = os.Getenv("OMDB_API_KEY")
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads the file at path, falling back to Default when the file
// does not exist. Any other read or parse failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(expanded); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.OMDB.APIKey == "" || c.OMDB.APIKey == "your_api_key_here" {
		return ErrMissingAPIKey
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value %v for %s (%s)", fe.Value(), fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

var validate = newValidator()

// newValidator reports fields by their YAML key
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func (c *Config) applyDefaults() {
	if c.OMDB.BaseURL == "" {
		c.OMDB.BaseURL = "https://www.omdbapi.com/"
	}
	if c.OMDB.TimeoutSeconds <= 0 {
		c.OMDB.TimeoutSeconds = 10
	}
	if c.Search.MinQueryLength == 0 {
		c.Search.MinQueryLength = 3
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "~/.local/share/popcorn/popcorn.db"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "watched"
	}
	if c.Storage.WatchDebounceMs <= 0 {
		c.Storage.WatchDebounceMs = 250
	}
	if c.UI.MaxRating == 0 {
		c.UI.MaxRating = 10
	}
	if c.UI.Title == "" {
		c.UI.Title = "usePopcorn"
	}
	if c.Logging.File == "" {
		c.Logging.File = "~/.local/share/popcorn/popcorn.log"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
