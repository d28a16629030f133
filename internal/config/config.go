package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type FetcherConfig struct {
	UserAgent string `yaml:"userAgent"`
	TimeoutMs int    `yaml:"timeoutMs"`
}

type CaptureConfig struct {
	MaxDepth        int  `yaml:"maxDepth"`
	MaxElements     int  `yaml:"maxElements"`
	TextLimit       int  `yaml:"textLimit"`
	HTMLLimit       int  `yaml:"htmlLimit"`
	IncludeMarkdown bool `yaml:"includeMarkdown"`
}

type RobotsConfig struct {
	Respect bool `yaml:"respect"`
}

type RodConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BrowserURL string `yaml:"browserURL"`
	TimeoutMs  int    `yaml:"timeoutMs"`
}

type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrationsDir"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"apiKey"`
}

type RateLimitConfig struct {
	Enabled          bool `yaml:"enabled"`
	DefaultPerMinute int  `yaml:"defaultPerMinute"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Capture   CaptureConfig   `yaml:"capture"`
	Robots    RobotsConfig    `yaml:"robots"`
	Rod       RodConfig       `yaml:"rod"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

func Load(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: %v", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config: %v", err)
	}

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Fetcher.TimeoutMs == 0 {
		c.Fetcher.TimeoutMs = 30000
	}
	if c.Capture.MaxDepth == 0 {
		c.Capture.MaxDepth = 15
	}
	if c.Capture.MaxElements == 0 {
		c.Capture.MaxElements = 100
	}
	if c.Capture.TextLimit == 0 {
		c.Capture.TextLimit = 500
	}
	if c.Capture.HTMLLimit == 0 {
		c.Capture.HTMLLimit = 1000
	}
	if c.RateLimit.DefaultPerMinute == 0 {
		c.RateLimit.DefaultPerMinute = 60
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "db/migrations"
	}
}
