package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the settings for the server and CLI surfaces. Defaults
// produce a fully local deployment (in-memory store, sqlite analytics,
// no AI or object storage) so the binary runs without any file present.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Assets    AssetsConfig    `yaml:"assets"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	AI        AIConfig        `yaml:"ai"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // debug, release
}

type StoreConfig struct {
	Backend string      `yaml:"backend"` // memory, mongo
	Mongo   MongoConfig `yaml:"mongo"`
}

type MongoConfig struct {
	URI        string   `yaml:"uri"`
	Database   string   `yaml:"database"`
	Collection string   `yaml:"collection"`
	Timeout    Duration `yaml:"timeout"`
}

// Duration parses "5s"-style values, which plain time.Duration does not
// accept from yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type AssetsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type AnalyticsConfig struct {
	DSN string `yaml:"dsn"`
}

type AIConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type LoggingConfig struct {
	Mode string `yaml:"mode"` // development, production
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "debug",
		},
		Store: StoreConfig{
			Backend: "memory",
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "forge",
				Collection: "templates",
				Timeout:    Duration(10 * time.Second),
			},
		},
		Analytics: AnalyticsConfig{
			DSN: "./data/forge.db",
		},
		AI: AIConfig{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o-mini",
			MaxTokens: 1024,
		},
		Logging: LoggingConfig{
			Mode: "development",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error;
// a malformed one is. Environment variables override the file for the
// secrets that should not live on disk.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FORGE_CONFIG")
	}
	if path == "" {
		path = "forge.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if uri := os.Getenv("FORGE_MONGO_URI"); uri != "" {
		cfg.Store.Mongo.URI = uri
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.AI.BaseURL = base
	}
	if access := os.Getenv("FORGE_S3_ACCESS_KEY"); access != "" {
		cfg.Assets.AccessKey = access
	}
	if secret := os.Getenv("FORGE_S3_SECRET_KEY"); secret != "" {
		cfg.Assets.SecretKey = secret
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "memory", "mongo":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	switch c.Logging.Mode {
	case "development", "production":
	default:
		return fmt.Errorf("config: unknown logging mode %q", c.Logging.Mode)
	}
	if c.Assets.Enabled && c.Assets.Bucket == "" {
		return fmt.Errorf("config: assets enabled without a bucket")
	}
	if c.AI.Enabled && c.AI.APIKey == "" {
		return fmt.Errorf("config: ai enabled without an api key")
	}
	return nil
}
