// Package config loads environment-based configuration for the affect
// engine: a .env file (github.com/joho/godotenv) decoded into a struct via
// github.com/caarlos0/env/v11, then bounds-checked against spec.md §6.
package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/affectengine/affectengine/internal/affect"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, falling back to system environment variables")
	}
}

// Config is the full enumerated configuration surface from spec.md §6.
type Config struct {
	StatePath                   string  `env:"AFFECT_STATE_PATH" envDefault:"./data/emotion-engine.json"`
	AgentsRoot                  string  `env:"AFFECT_AGENTS_ROOT" envDefault:"./data/agents"`
	AgentID                     string  `env:"AFFECT_AGENT_ID" envDefault:"default"`
	ClassificationLogPath       string  `env:"AFFECT_CLASSIFICATION_LOG_PATH" envDefault:"./data/classifications.jsonl"`
	DashboardAddr                string  `env:"AFFECT_DASHBOARD_ADDR" envDefault:":8090"`

	ClassifierAPIKey    string `env:"AFFECT_CLASSIFIER_API_KEY"`
	ClassifierBaseURL   string `env:"AFFECT_CLASSIFIER_BASE_URL"`
	ClassifierModel     string `env:"AFFECT_CLASSIFIER_MODEL" envDefault:"claude-haiku-4-5"`
	ClassifierProvider  string `env:"AFFECT_CLASSIFIER_PROVIDER" envDefault:"anthropic"`
	ClassifierURL       string `env:"AFFECT_CLASSIFIER_URL"`

	ConfidenceMin               float64 `env:"AFFECT_CONFIDENCE_MIN" envDefault:"0.5"`
	HalfLifeHours               float64 `env:"AFFECT_HALF_LIFE_HOURS" envDefault:"12"`
	TrendWindowHours            float64 `env:"AFFECT_TREND_WINDOW_HOURS" envDefault:"24"`
	MaxHistory                  int     `env:"AFFECT_MAX_HISTORY" envDefault:"10"`
	RuminationThreshold         float64 `env:"AFFECT_RUMINATION_THRESHOLD" envDefault:"0.6"`
	RuminationMaxStages         int     `env:"AFFECT_RUMINATION_MAX_STAGES" envDefault:"5"`
	DecayServiceIntervalMinutes int     `env:"AFFECT_DECAY_INTERVAL_MINUTES" envDefault:"1"`
	TimeoutMs                   int     `env:"AFFECT_CLASSIFIER_TIMEOUT_MS" envDefault:"10000"`
}

// Load decodes environment variables into a Config and validates bounds.
// Returns an *affect.Error of kind ConfigError on the first out-of-range
// value.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, affect.NewError(affect.ConfigError, "failed to parse environment configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every enumerated numeric key against its declared bound
// (spec.md §6).
func (c *Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
		msg  string
	}{
		{"confidenceMin", c.ConfidenceMin >= 0 && c.ConfidenceMin <= 1, "confidenceMin must be in [0,1]"},
		{"halfLifeHours", c.HalfLifeHours >= 0.1, "halfLifeHours must be >= 0.1"},
		{"trendWindowHours", c.TrendWindowHours >= 1, "trendWindowHours must be >= 1"},
		{"maxHistory", c.MaxHistory >= 10, "maxHistory must be >= 10"},
		{"ruminationThreshold", c.RuminationThreshold >= 0 && c.RuminationThreshold <= 1, "ruminationThreshold must be in [0,1]"},
		{"ruminationMaxStages", c.RuminationMaxStages >= 1 && c.RuminationMaxStages <= 10, "ruminationMaxStages must be in [1,10]"},
		{"decayServiceIntervalMinutes", c.DecayServiceIntervalMinutes >= 1, "decayServiceIntervalMinutes must be >= 1"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return affect.NewError(affect.ConfigError, fmt.Sprintf("invalid %s: %s", chk.name, chk.msg), nil)
		}
	}
	return nil
}

// AffectConfig projects the engine-relevant fields into affect.Config.
func (c *Config) AffectConfig() affect.Config {
	return affect.Config{
		HalfLifeHours:       c.HalfLifeHours,
		MaxHistory:          c.MaxHistory,
		RuminationThreshold: c.RuminationThreshold,
		RuminationMaxStages: c.RuminationMaxStages,
	}
}
