package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"trajetviz.dev/internal/appconf"
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, viz, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	coreApp, err := BuildApplication(cfg, viz)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	srv, api := CreateServer(coreApp, cfg)
	if err := Run(srv, coreApp, api); err != nil {
		coreApp.Logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig resolves settings from, in increasing priority, built-in
// defaults, TRAJETVIZ_* environment variables, and flags. A -config file
// replaces all three.
func loadConfig(args []string) (appconf.Config, appconf.VizConfig, error) {
	fs := flag.NewFlagSet("trajetviz", flag.ContinueOnError)

	port := fs.Int("port", envInt("TRAJETVIZ_PORT", appconf.DefaultPort), "API server port")
	env := fs.String("env", envString("TRAJETVIZ_ENV", "development"), "Environment (development|test|production)")
	apiKeys := fs.String("api-keys", envString("TRAJETVIZ_API_KEYS", "test"), "Comma separated API keys")
	rateLimit := fs.Int("rate-limit", envInt("TRAJETVIZ_RATE_LIMIT", appconf.DefaultRateLimit), "Requests per second per API key")
	exemptKeys := fs.String("rate-limit-exempt-keys", envString("TRAJETVIZ_RATE_LIMIT_EXEMPT_KEYS", ""), "Comma separated API keys that skip the rate limit")
	backendURL := fs.String("backend-url", envString("TRAJETVIZ_BACKEND_URL", appconf.DefaultBackendURL), "Journey search backend base URL")
	configPath := fs.String("config", envString("TRAJETVIZ_CONFIG", ""), "Path to a YAML config file")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, appconf.VizConfig{}, err
	}

	if *configPath != "" {
		fileCfg, err := appconf.LoadFromFile(*configPath)
		if err != nil {
			return appconf.Config{}, appconf.VizConfig{}, err
		}
		cfg := fileCfg.ToAppConfig()
		cfg.ConfigPath = *configPath
		return cfg, fileCfg.ToVizConfig(), nil
	}

	cfg := appconf.Config{
		Port:                *port,
		Env:                 appconf.EnvFlagToEnvironment(*env),
		ApiKeys:             ParseAPIKeys(*apiKeys),
		Verbose:             *verbose,
		RateLimit:           *rateLimit,
		RateLimitExemptKeys: ParseAPIKeys(*exemptKeys),
		BackendURL:          *backendURL,
		BackendTimeout:      appconf.DefaultBackendTimeout,
	}
	return cfg, appconf.DefaultVizConfig(), nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
