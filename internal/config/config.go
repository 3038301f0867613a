package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type AccessConfig struct {
	// FieldRepsAllTerritories mirrors the mobile app behavior where field
	// reps are not territory-scoped. Set false to scope them like managers.
	FieldRepsAllTerritories *bool `yaml:"field_reps_all_territories"`
}

type EscalationConfig struct {
	// SLA is how long a request may stay PENDING before the sweeper marks
	// it ESCALATED.
	SLA time.Duration `yaml:"sla"`
	// Interval is how often the sweeper runs.
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	HTTP       *HTTPConfig      `yaml:"http"`
	DB         DatabaseConfig   `yaml:"database"`
	Access     AccessConfig     `yaml:"access"`
	Escalation EscalationConfig `yaml:"escalation"`
}

func (c Config) HTTPAddr() string {
	if c.HTTP == nil || c.HTTP.Addr == "" {
		return ":8080"
	}
	return c.HTTP.Addr
}

func (c Config) FieldRepsAllTerritories() bool {
	if c.Access.FieldRepsAllTerritories == nil {
		return true
	}
	return *c.Access.FieldRepsAllTerritories
}

func (c Config) EscalationSLA() time.Duration {
	if c.Escalation.SLA <= 0 {
		return 48 * time.Hour
	}
	return c.Escalation.SLA
}

func (c Config) EscalationInterval() time.Duration {
	if c.Escalation.Interval <= 0 {
		return 10 * time.Minute
	}
	return c.Escalation.Interval
}

func (db DatabaseConfig) ConnString() string {
	host := db.Host
	if host == "" {
		host = "localhost"
	}

	port := db.Port
	if port == 0 {
		port = 5432
	}

	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User,
		db.Password,
		host,
		port,
		db.Name,
		sslMode,
	)
}

func load(path string) (*Config, error) {
	// #nosec G304 -- config file path is provided via command line flag
	data, err := os.ReadFile(path)
	if err != nil {
		return &Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &Config{}, fmt.Errorf("unmarshal config yaml: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.DB.User == "" || cfg.DB.Password == "" {
		return &Config{}, fmt.Errorf("database user and password must be set in config or DB_USER/DB_PASSWORD")
	}

	return cfg, nil
}

// applyEnvOverrides lets credentials come from the environment (or a .env
// file) instead of the yaml file checked into deployment repos.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DB.Name = v
	}
}

func ParseConfig() (*Config, error) {
	configPath := flag.String("config", "", "Path to config file")

	flag.Parse()

	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	if *configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}

	cfg, err := load(*configPath)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
