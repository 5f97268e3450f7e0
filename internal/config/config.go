// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Meli          MeliConfig          `yaml:"meli"`
	LLM           LLMConfig           `yaml:"llm"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// MeliConfig defines MercadoLibre API settings.
type MeliConfig struct {
	ClientID     string          `yaml:"client_id"`
	ClientSecret string          `yaml:"client_secret"`
	Site         string          `yaml:"site"`
	TokenURL     string          `yaml:"token_url"`
	APIURL       string          `yaml:"api_url"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines MercadoLibre API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// LLMConfig defines summary backend settings.
type LLMConfig struct {
	Backend string       `yaml:"backend"` // groq, ollama
	Groq    GroqConfig   `yaml:"groq"`
	Ollama  OllamaConfig `yaml:"ollama"`
}

// GroqConfig defines Groq API settings. The API key is normally supplied
// via ${GROQ_API_KEY} expansion or left empty to use the environment.
type GroqConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// OllamaConfig defines Ollama-specific settings.
type OllamaConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// PipelineConfig defines enrichment pipeline settings.
type PipelineConfig struct {
	Workers         int           `yaml:"workers"`
	SubqueryTimeout time.Duration `yaml:"subquery_timeout"`
	FetchLimit      int           `yaml:"fetch_limit"`
}

// ScheduleConfig defines the optional scheduled category refresh.
type ScheduleConfig struct {
	RefreshEnabled  bool          `yaml:"refresh_enabled"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	RefreshCategory string        `yaml:"refresh_category"`
	RefreshLimit    int           `yaml:"refresh_limit"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyMeliDefaults(&cfg.Meli)
	applyLLMDefaults(&cfg.LLM)
	applyPipelineDefaults(&cfg.Pipeline)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		// SSE summary streams can stay open for minutes.
		s.WriteTimeout = 5 * time.Minute
	}
}

func applyMeliDefaults(m *MeliConfig) {
	if m.Site == "" {
		m.Site = "MLC"
	}
	if m.TokenURL == "" {
		m.TokenURL = "https://api.mercadolibre.com/oauth/token"
	}
	if m.APIURL == "" {
		m.APIURL = "https://api.mercadolibre.com"
	}
	applyRateLimitDefaults(&m.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Backend == "" {
		l.Backend = "groq"
	}
	if l.Groq.Endpoint == "" {
		l.Groq.Endpoint = "https://api.groq.com/openai"
	}
	if l.Groq.Model == "" {
		l.Groq.Model = "mixtral-8x7b-32768"
	}
	if l.Ollama.Model == "" {
		l.Ollama.Model = "llama3"
	}
}

func applyPipelineDefaults(p *PipelineConfig) {
	if p.Workers == 0 {
		p.Workers = 5
	}
	if p.SubqueryTimeout == 0 {
		p.SubqueryTimeout = 10 * time.Second
	}
	if p.FetchLimit == 0 {
		p.FetchLimit = 20
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 30 * time.Minute
	}
	if s.RefreshLimit == 0 {
		s.RefreshLimit = 20
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Meli.ClientID == "" {
		errs = append(errs, fmt.Errorf("meli.client_id is required"))
	}
	if cfg.Meli.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("meli.client_secret is required"))
	}

	switch cfg.LLM.Backend {
	case "groq":
		// API key may come from the GROQ_API_KEY environment variable.
	case "ollama":
		if cfg.LLM.Ollama.Endpoint == "" {
			errs = append(
				errs,
				fmt.Errorf("llm.ollama.endpoint is required when backend is ollama"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf("llm.backend must be one of: groq, ollama (got %q)", cfg.LLM.Backend),
		)
	}

	if cfg.Schedule.RefreshEnabled && cfg.Schedule.RefreshCategory == "" {
		errs = append(
			errs,
			fmt.Errorf("schedule.refresh_category is required when refresh is enabled"),
		)
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	return errors.Join(errs...)
}
