package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	DebugServices []string     `toml:"debug_services"`
	JSONLogs      bool         `toml:"json_logs"`
	API           APIConfig    `toml:"api"`
	Web           WebConfig    `toml:"web"`
	Search        SearchConfig `toml:"search"`
}

// APIConfig locates the search API.
type APIConfig struct {
	URL       string   `toml:"url" validate:"required,url"`
	Key       string   `toml:"key"`
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

type WebConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port" validate:"min=1,max=65535"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	Gzip            bool     `toml:"gzip"`
}

type SearchConfig struct {
	ResultsPerPage int `toml:"results_per_page" validate:"min=1"`
	PageLimit      int `toml:"page_limit" validate:"min=1"`
}

type Duration struct {
	time.Duration `validate:"gt=0"`
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

const (
	DefaultAPIURL          = "https://rosetta.example.org/api/v1"
	DefaultAPITimeout      = 10 * time.Second
	DefaultHost            = "localhost"
	DefaultPort            = 8080
	DefaultShutdownTimeout = 30 * time.Second
	DefaultResultsPerPage  = 20
	DefaultPageLimit       = 500
)

func GetDefaultConfig() *Config {
	return &Config{
		DebugServices: []string{},
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: Duration{DefaultAPITimeout},
		},
		Web: WebConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: Duration{DefaultShutdownTimeout},
			Gzip:            true,
		},
		Search: SearchConfig{
			ResultsPerPage: DefaultResultsPerPage,
			PageLimit:      DefaultPageLimit,
		},
	}
}

// LoadConfig reads the configuration at configPath. Settings missing from
// the file keep their default value, and a missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := GetDefaultConfig()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings, naming every invalid one.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", tomlPath(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
}

// tomlPath turns "Config.Web.ShutdownTimeout.Duration" into
// "web.shutdown_timeout".
func tomlPath(namespace string) string {
	parts := strings.Split(namespace, ".")[1:]
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "Duration" {
			continue
		}
		out = append(out, snake(p))
	}
	return strings.Join(out, ".")
}

func snake(s string) string {
	switch s {
	case "API":
		return "api"
	case "URL":
		return "url"
	}
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// Addr returns the listen address of the web server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// GetConfigDir returns the configuration directory for catalogue
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "catalogue"), nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
