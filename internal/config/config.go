// Package config loads the optional YAML configuration. Every knob has a
// working default, so runs without a config file behave sensibly.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for an enrichment run.
type Config struct {
	UserAgent        string
	Timeout          time.Duration // per-request HTTP timeout
	Retries          int           // extra fetch attempts after a transport failure
	StepDelay        time.Duration // pause after each network-issuing discovery step
	JobDelay         time.Duration // pause between per-job detail fetches
	MaxJobs          int           // postings attached per company
	MaxSearchResults int           // default search result cap
	CareersPaths     []string      // overrides the built-in probe path list when set
}

// Default returns the production defaults.
func Default() *Config {
	return &Config{
		UserAgent:        "Mozilla/5.0 (compatible; Prospect/1.0; +https://example.com/bot)",
		Timeout:          15 * time.Second,
		Retries:          2,
		StepDelay:        time.Second,
		JobDelay:         500 * time.Millisecond,
		MaxJobs:          3,
		MaxSearchResults: 10,
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	UserAgent        string   `yaml:"user_agent"`
	Timeout          string   `yaml:"timeout"`
	Retries          *int     `yaml:"retries"`
	StepDelay        string   `yaml:"step_delay"`
	JobDelay         string   `yaml:"job_delay"`
	MaxJobs          *int     `yaml:"max_jobs"`
	MaxSearchResults *int     `yaml:"max_search_results"`
	CareersPaths     []string `yaml:"careers_paths"`
}

// Load reads and parses the YAML config at path over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if raw.UserAgent != "" {
		cfg.UserAgent = raw.UserAgent
	}
	if raw.Timeout != "" {
		cfg.Timeout, err = time.ParseDuration(raw.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse timeout %q: %w", raw.Timeout, err)
		}
	}
	if raw.StepDelay != "" {
		cfg.StepDelay, err = time.ParseDuration(raw.StepDelay)
		if err != nil {
			return nil, fmt.Errorf("parse step_delay %q: %w", raw.StepDelay, err)
		}
	}
	if raw.JobDelay != "" {
		cfg.JobDelay, err = time.ParseDuration(raw.JobDelay)
		if err != nil {
			return nil, fmt.Errorf("parse job_delay %q: %w", raw.JobDelay, err)
		}
	}
	if raw.Retries != nil {
		cfg.Retries = *raw.Retries
	}
	if raw.MaxJobs != nil {
		cfg.MaxJobs = *raw.MaxJobs
	}
	if raw.MaxSearchResults != nil {
		cfg.MaxSearchResults = *raw.MaxSearchResults
	}
	if len(raw.CareersPaths) > 0 {
		cfg.CareersPaths = raw.CareersPaths
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}
	if cfg.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", cfg.Retries)
	}
	if cfg.MaxJobs < 1 {
		return fmt.Errorf("max_jobs must be at least 1, got %d", cfg.MaxJobs)
	}
	if cfg.MaxSearchResults < 1 {
		return fmt.Errorf("max_search_results must be at least 1, got %d", cfg.MaxSearchResults)
	}
	if cfg.StepDelay < 0 || cfg.JobDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}
