package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Catalog CatalogConfig
	Events  EventsConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Addr is derived from Port.
	Addr string
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// CatalogConfig 描述目录种子数据来源。
type CatalogConfig struct {
	// SeedFile optionally replaces the built-in seed (.yaml, .yml, .toml, .json).
	SeedFile string `env:"SEED_FILE"`
}

// EventsConfig 描述变更推送。
type EventsConfig struct {
	Buffer       int           `env:"EVENTS_BUFFER" envDefault:"16"`
	PingInterval time.Duration `env:"EVENTS_PING_INTERVAL" envDefault:"30s"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	addr, err := listenAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr
	cfg.Catalog.SeedFile = strings.TrimSpace(cfg.Catalog.SeedFile)

	if cfg.Events.Buffer < 1 {
		return nil, fmt.Errorf("invalid EVENTS_BUFFER value %d: must be positive", cfg.Events.Buffer)
	}
	if cfg.Events.PingInterval <= 0 {
		return nil, fmt.Errorf("invalid EVENTS_PING_INTERVAL value %s: must be positive", cfg.Events.PingInterval)
	}
	return &cfg, nil
}

// listenAddr 将 PORT 规范化为监听地址，可以是 "8080"、":8080" 或 "host:8080"。
func listenAddr(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = "8080"
	}
	if !strings.Contains(value, ":") {
		value = ":" + value
	}

	host, port, err := net.SplitHostPort(value)
	if err != nil {
		return "", fmt.Errorf("invalid PORT value %q: %w", raw, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return "", fmt.Errorf("invalid PORT value %q: port must be a number in 0-65535", raw)
	}
	return net.JoinHostPort(host, strconv.Itoa(n)), nil
}
