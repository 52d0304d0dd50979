package cmd

import (
	"fmt"

	"github.com/rubiojr/catalogue/pkg/config"
	"github.com/rubiojr/catalogue/pkg/log"
	"github.com/rubiojr/catalogue/pkg/search"
	"github.com/rubiojr/catalogue/pkg/searchapi"
	"github.com/rubiojr/catalogue/pkg/version"
)

// loadConfig loads the configuration and applies its logging settings.
// debug forces debug logging for every service.
func loadConfig(configPath string, debug bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg, debug)
	return cfg, nil
}

func setupLogging(cfg *config.Config, debug bool) {
	log.SetJSON(cfg.JSONLogs)
	log.ResetDebug()
	log.SetGlobalDebug(debug)
	for _, name := range cfg.DebugServices {
		log.EnableDebugFor(name)
	}
}

// newClient creates the search API client described by cfg.
func newClient(cfg *config.Config) *searchapi.Client {
	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "catalogue/" + version.Version
	}
	opts := []searchapi.Option{
		searchapi.WithTimeout(cfg.API.Timeout.Duration),
		searchapi.WithUserAgent(userAgent),
	}
	if cfg.API.Key != "" {
		opts = append(opts, searchapi.WithAPIKey(cfg.API.Key))
	}
	return searchapi.New(cfg.API.URL, opts...)
}

func searchConfig(cfg *config.Config) search.Config {
	return search.Config{
		ResultsPerPage: cfg.Search.ResultsPerPage,
		PageLimit:      cfg.Search.PageLimit,
	}
}
