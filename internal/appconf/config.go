package appconf

import (
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps a flag or file value to an Environment. Unknown
// values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds the server settings.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int
	// RateLimitExemptKeys are valid keys that bypass the rate limit, for
	// trusted front ends that proxy many users.
	RateLimitExemptKeys []string
	BackendURL          string
	BackendTimeout      time.Duration
	ConfigPath          string
}

const (
	DefaultPort           = 4000
	DefaultRateLimit      = 100
	DefaultBackendURL     = "http://localhost:8000"
	DefaultBackendTimeout = 10 * time.Second
)
