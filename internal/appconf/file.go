package appconf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration file layout.
type FileConfig struct {
	Port            int      `yaml:"port" validate:"gte=0,lte=65535"`
	Env             string   `yaml:"env" validate:"omitempty,oneof=development test production"`
	ApiKeys         []string `yaml:"api-keys" validate:"dive,required"`
	Verbose         bool     `yaml:"verbose"`
	RateLimit       int      `yaml:"rate-limit" validate:"gte=0"`
	RateLimitExempt []string `yaml:"rate-limit-exempt-keys" validate:"dive,required"`

	Backend struct {
		URL     string        `yaml:"url" validate:"required,url"`
		Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	} `yaml:"backend"`

	Map VizConfig `yaml:"map"`
}

var fileValidator = validator.New(validator.WithRequiredStructEnabled())

// DefaultFileConfig returns the values used for keys a file leaves out.
func DefaultFileConfig() *FileConfig {
	cfg := &FileConfig{
		Port:      DefaultPort,
		Env:       "development",
		ApiKeys:   []string{"test"},
		RateLimit: DefaultRateLimit,
		Map:       DefaultVizConfig(),
	}
	cfg.Backend.URL = DefaultBackendURL
	cfg.Backend.Timeout = DefaultBackendTimeout
	return cfg
}

// LoadFromFile reads a YAML config file over the defaults and validates the
// result.
func LoadFromFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultFileConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *FileConfig) Validate() error {
	err := fileValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func (c *FileConfig) ToAppConfig() Config {
	return Config{
		Port:                c.Port,
		Env:                 EnvFlagToEnvironment(c.Env),
		ApiKeys:             c.ApiKeys,
		Verbose:             c.Verbose,
		RateLimit:           c.RateLimit,
		RateLimitExemptKeys: c.RateLimitExempt,
		BackendURL:          c.Backend.URL,
		BackendTimeout:      c.Backend.Timeout,
	}
}

func (c *FileConfig) ToVizConfig() VizConfig {
	return c.Map
}
