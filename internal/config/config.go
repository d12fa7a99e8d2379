package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	NATS       NATSConfig       `yaml:"nats"`
	Redis      RedisConfig      `yaml:"redis"`
	AirQuality AirQualityConfig `yaml:"airquality"`
	Engine     EngineConfig     `yaml:"engine"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port            int    `yaml:"port"`
	MetricsPort     int    `yaml:"metrics_port"`
	AdminToken      string `yaml:"admin_token"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type NATSConfig struct {
	URL string `yaml:"url"` // empty disables event publishing
}

type RedisConfig struct {
	Addr          string `yaml:"addr"` // empty disables the result cache
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	ResultTTLMins int    `yaml:"result_ttl_mins"`
}

type AirQualityConfig struct {
	URL string `yaml:"url"` // empty disables air-quality lookups
}

type EngineConfig struct {
	WeightMethod    string `yaml:"weight_method"`
	PowerIterations int    `yaml:"power_iterations"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ResultTTL() time.Duration {
	return time.Duration(c.Redis.ResultTTLMins) * time.Minute
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            8700,
			MetricsPort:     9101,
			RateLimitPerMin: 120,
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			ResultTTLMins: 10,
		},
		Engine: EngineConfig{
			WeightMethod:    "geometric_mean",
			PowerIterations: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HOMERANK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("HOMERANK_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("HOMERANK_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("HOMERANK_RATE_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMin = n
		}
	}
	if v := os.Getenv("HOMERANK_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v, ok := os.LookupEnv("HOMERANK_NATS_URL"); ok {
		cfg.NATS.URL = v
	}
	if v, ok := os.LookupEnv("HOMERANK_REDIS_ADDR"); ok {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("HOMERANK_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HOMERANK_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("HOMERANK_RESULT_TTL_MINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.ResultTTLMins = n
		}
	}
	if v := os.Getenv("HOMERANK_AIRQUALITY_URL"); v != "" {
		cfg.AirQuality.URL = v
	}
	if v := os.Getenv("HOMERANK_WEIGHT_METHOD"); v != "" {
		cfg.Engine.WeightMethod = v
	}
	if v := os.Getenv("HOMERANK_POWER_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.PowerIterations = n
		}
	}
	if v := os.Getenv("HOMERANK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
