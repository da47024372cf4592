// Package config loads the application configuration.
//
// Values are resolved in order: built-in defaults, an optional .env file,
// the YAML config file, environment variables. The result is validated
// with struct tags before use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "config.yml"
	DefaultSourceFile = "data/trainMap.txt"

	defaultHost      = "0.0.0.0"
	defaultPort      = 8080
	defaultCacheSize = 256
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

type Config struct {
	Network NetworkConfig `yaml:"network"`
	Server  ServerConfig  `yaml:"server"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
}

// NetworkConfig points at the network description file. An empty
// SourceFile starts the program with an empty network.
type NetworkConfig struct {
	SourceFile string `yaml:"sourceFile"`
}

type ServerConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,url"`
	ReadTimeoutMS  int      `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS int      `yaml:"writeTimeoutMS" validate:"gte=0"`
}

type CacheConfig struct {
	Size int `yaml:"size" validate:"gte=0"`
}

type LoggingConfig struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format        string `yaml:"format" validate:"oneof=text json"`
	IncludeCaller bool   `yaml:"includeCaller"`
}

type Neo4jConfig struct {
	URI            string `yaml:"uri" validate:"omitempty,uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"maxConnections" validate:"gte=0"`
}

func Default() Config {
	return Config{
		Network: NetworkConfig{SourceFile: DefaultSourceFile},
		Server: ServerConfig{
			Host: defaultHost,
			Port: defaultPort,
		},
		Cache: CacheConfig{Size: defaultCacheSize},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load resolves the configuration. When path is empty config.yml is read if
// present; an explicitly named file must exist.
func Load(path string) (Config, error) {
	// .env is optional, mostly for local development.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("TRAINMAP_FILE"); ok {
		cfg.Network.SourceFile = v
	}

	cfg.Server.Host = valueOrDefault("SERVER_HOST", cfg.Server.Host)
	port, err := parseIntWithDefault("SERVER_PORT", cfg.Server.Port)
	if err != nil {
		return err
	}
	cfg.Server.Port = port
	cfg.Server.Enabled = parseBoolWithDefault("SERVER_ENABLED", cfg.Server.Enabled)
	if v := os.Getenv("SERVER_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitCSV(v)
	}

	size, err := parseIntWithDefault("CACHE_SIZE", cfg.Cache.Size)
	if err != nil {
		return err
	}
	cfg.Cache.Size = size

	cfg.Logging.Level = strings.ToLower(valueOrDefault("LOG_LEVEL", cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(valueOrDefault("LOG_FORMAT", cfg.Logging.Format))
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	cfg.Neo4j.URI = valueOrDefault("NEO4J_URI", cfg.Neo4j.URI)
	cfg.Neo4j.Database = valueOrDefault("NEO4J_DATABASE", cfg.Neo4j.Database)
	cfg.Neo4j.Username = valueOrDefault("NEO4J_USERNAME", cfg.Neo4j.Username)
	cfg.Neo4j.Password = valueOrDefault("NEO4J_PASSWORD", cfg.Neo4j.Password)
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		return val, nil
	}
	return fallback, nil
}

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
