package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhigl/jobscout/internal/aggregate"
)

// Config is the root configuration for jobscout.
type Config struct {
	ListenAddr string
	SQLitePath string
	Search     SearchConfig
	AI         AIConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Watch      WatchConfig
	Email      EmailConfig
}

// SearchConfig holds the default aggregation parameters.
type SearchConfig struct {
	Query          string
	City           string
	IncludeAmazon  bool
	IncludeNetflix bool
	WorkdayTargets []aggregate.WorkdayTarget
}

// AIConfig controls the optional LLM enforcement/insight layer.
type AIConfig struct {
	Enabled bool
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // e.g. "gpt-4o-mini"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
}

// MongoConfig locates the document store. When URI is empty and Host is set,
// a mongodb+srv URI is composed from the credential fields.
type MongoConfig struct {
	URI      string
	User     string
	Password string
	Host     string
	AppName  string
}

// ResolvedURI returns the connection string, composing one from credentials
// when no explicit URI is given. Empty means Mongo is not configured.
func (m MongoConfig) ResolvedURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.Host == "" {
		return ""
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		m.User, m.Password, m.Host, m.AppName)
}

// RedisConfig controls the optional result cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Interval   time.Duration
	SeenMaxAge time.Duration // seen ids older than this are cleaned up
}

// EmailConfig controls the watch-mode email notifier.
type EmailConfig struct {
	Enabled    bool
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as strings).
type rawConfig struct {
	ListenAddr string           `yaml:"listen_addr"`
	SQLitePath string           `yaml:"sqlite_path"`
	Search     rawSearchConfig  `yaml:"search"`
	AI         rawAIConfig      `yaml:"ai"`
	Mongo      rawMongoConfig   `yaml:"mongo"`
	Redis      rawRedisConfig   `yaml:"redis"`
	Watch      rawWatchConfig   `yaml:"watch"`
	Email      rawEmailConfig   `yaml:"email"`
}

type rawSearchConfig struct {
	Query          string             `yaml:"query"`
	City           string             `yaml:"city"`
	IncludeAmazon  *bool              `yaml:"include_amazon"`
	IncludeNetflix *bool              `yaml:"include_netflix"`
	WorkdayTargets []rawWorkdayTarget `yaml:"workday_targets"`
}

type rawWorkdayTarget struct {
	Host        string `yaml:"host"`
	Site        string `yaml:"site"`
	CompanyHint string `yaml:"company_hint"`
}

type rawAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

type rawMongoConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	AppName  string `yaml:"app_name"`
}

type rawRedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      string `yaml:"ttl"`
}

type rawWatchConfig struct {
	Interval   string `yaml:"interval"`
	SeenMaxAge string `yaml:"seen_max_age"`
}

type rawEmailConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	SMTPUser   string `yaml:"smtp_user"`
	SMTPPass   string `yaml:"smtp_pass"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Load reads and parses the YAML config at path, expands environment
// variables, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		ListenAddr: raw.ListenAddr,
		SQLitePath: raw.SQLitePath,
		Search: SearchConfig{
			Query:          raw.Search.Query,
			City:           raw.Search.City,
			IncludeAmazon:  boolOr(raw.Search.IncludeAmazon, true),
			IncludeNetflix: boolOr(raw.Search.IncludeNetflix, true),
		},
		Mongo: MongoConfig(raw.Mongo),
		Email: EmailConfig(raw.Email),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":5057"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "jobscout.db"
	}
	if cfg.Search.Query == "" {
		cfg.Search.Query = "Full Stack"
	}

	for _, t := range raw.Search.WorkdayTargets {
		// Incomplete entries are dropped, matching the permissive parsing
		// policy for the workday override query param.
		if t.Host == "" || t.Site == "" || t.CompanyHint == "" {
			continue
		}
		cfg.Search.WorkdayTargets = append(cfg.Search.WorkdayTargets, aggregate.WorkdayTarget(t))
	}

	aiTimeout, err := durationOr(raw.AI.Timeout, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
	}
	aiBaseURL := raw.AI.BaseURL
	if aiBaseURL == "" {
		aiBaseURL = defaultOpenAIBaseURL
	}
	cfg.AI = AIConfig{
		Enabled: raw.AI.Enabled,
		BaseURL: aiBaseURL,
		Model:   raw.AI.Model,
		APIKey:  raw.AI.APIKey,
		Timeout: aiTimeout,
	}

	redisTTL, err := durationOr(raw.Redis.TTL, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("parse redis.ttl %q: %w", raw.Redis.TTL, err)
	}
	cfg.Redis = RedisConfig{
		Addr:     raw.Redis.Addr,
		Password: raw.Redis.Password,
		DB:       raw.Redis.DB,
		TTL:      redisTTL,
	}

	watchInterval, err := durationOr(raw.Watch.Interval, 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("parse watch.interval %q: %w", raw.Watch.Interval, err)
	}
	seenMaxAge, err := durationOr(raw.Watch.SeenMaxAge, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("parse watch.seen_max_age %q: %w", raw.Watch.SeenMaxAge, err)
	}
	cfg.Watch = WatchConfig{Interval: watchInterval, SeenMaxAge: seenMaxAge}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %v", cfg.Watch.Interval)
	}
	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required when ai.enabled is true")
		}
		if cfg.AI.Model == "" {
			return fmt.Errorf("ai.model is required when ai.enabled is true")
		}
	}
	if cfg.Email.Enabled {
		if cfg.Email.SMTPServer == "" {
			return fmt.Errorf("email.smtp_server is required when email.enabled is true")
		}
		if cfg.Email.FromEmail == "" || cfg.Email.ToEmail == "" {
			return fmt.Errorf("email.from_email and email.to_email are required when email.enabled is true")
		}
	}
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func durationOr(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
