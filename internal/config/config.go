package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultConfigFile    = "config.json"
	DefaultServerAddress = ":5000"
	DefaultProvider      = "openai"
	DefaultDatabase      = "sqlite3"
	DefaultBaseURL       = "https://openrouter.ai/api/v1"
	DefaultModel         = "meta-llama/llama-4-maverick:free"
)

// ErrMissingStoreCredentials is returned when the selected database has no connection details.
var ErrMissingStoreCredentials = errors.New("store credentials not configured")

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Providers   map[string]ProviderConfig `json:"providers"`
	Databases   map[string]DatabaseConfig `json:"databases"`
	Redis       RedisConfig               `json:"redis"`
	Audit       AuditConfig               `json:"audit"`
	Breaker     BreakerConfig             `json:"breaker"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
	Provider      string `json:"provider"`
	Database      string `json:"database"`
	LogLevel      string `json:"log_level"`
	AutoMigrate   bool   `json:"auto_migrate"`
}

type ProviderConfig struct {
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	APIKey    string `json:"api_key"`
	MaxTokens int    `json:"max_tokens"`
}

// DatabaseConfig holds either a complete DSN or the parts needed to build a mysql one.
type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	Params   string `json:"params"`
}

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Channel  string `json:"channel"`
}

type AuditConfig struct {
	Workers             int `json:"workers"`
	QueueSize           int `json:"queue_size"`
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

type BreakerConfig struct {
	Enabled          bool   `json:"enabled"`
	FailureThreshold uint32 `json:"failure_threshold"`
	OpenSeconds      int    `json:"open_seconds"`
}

// Load reads configuration from the provided path, then applies .env and environment overrides.
// An empty path falls back to config.json and tolerates its absence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := Default()
	file, err := os.Open(absPath)
	switch {
	case err == nil:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
		resolveSQLitePath(cfg, filepath.Dir(absPath))
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a configuration with the built-in provider and tuning defaults.
func Default() *Config {
	cfg := &Config{
		BasicConfig: BasicConfig{
			ServerAddress: DefaultServerAddress,
			Provider:      DefaultProvider,
			Database:      DefaultDatabase,
			LogLevel:      "info",
			AutoMigrate:   true,
		},
		Providers: map[string]ProviderConfig{
			DefaultProvider: {BaseURL: DefaultBaseURL, Model: DefaultModel},
		},
		Databases: map[string]DatabaseConfig{},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			OpenSeconds:      30,
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.BasicConfig.ServerAddress == "" {
		c.BasicConfig.ServerAddress = DefaultServerAddress
	}
	if c.BasicConfig.Provider == "" {
		c.BasicConfig.Provider = DefaultProvider
	}
	if c.BasicConfig.Database == "" {
		c.BasicConfig.Database = DefaultDatabase
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	if c.Databases == nil {
		c.Databases = map[string]DatabaseConfig{}
	}
	if c.Redis.Channel == "" {
		c.Redis.Channel = "chefwho:chatlogs"
	}
	if c.Audit.Workers <= 0 {
		c.Audit.Workers = 2
	}
	if c.Audit.QueueSize <= 0 {
		c.Audit.QueueSize = 256
	}
	if c.Audit.WriteTimeoutSeconds <= 0 {
		c.Audit.WriteTimeoutSeconds = 5
	}
	if c.Breaker.FailureThreshold == 0 {
		c.Breaker.FailureThreshold = 5
	}
	if c.Breaker.OpenSeconds <= 0 {
		c.Breaker.OpenSeconds = 30
	}
}

// Validate reports configuration errors that must stop the process before it serves traffic.
func (c *Config) Validate() error {
	driver := strings.ToLower(c.BasicConfig.Database)
	dbCfg, ok := c.Databases[c.BasicConfig.Database]
	if !ok {
		return fmt.Errorf("%w: no database config for %s", ErrMissingStoreCredentials, c.BasicConfig.Database)
	}
	switch driver {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pgx":
		if dbCfg.DSN == "" {
			return fmt.Errorf("%w: %s dsn must be provided", ErrMissingStoreCredentials, driver)
		}
	case "mysql":
		if dbCfg.DSN == "" && (dbCfg.Host == "" || dbCfg.Username == "") {
			return fmt.Errorf("%w: mysql needs a dsn or host and username", ErrMissingStoreCredentials)
		}
	default:
		return fmt.Errorf("unsupported database: %s", c.BasicConfig.Database)
	}
	if _, ok := c.Providers[c.BasicConfig.Provider]; !ok {
		return fmt.Errorf("provider %s not configured", c.BasicConfig.Provider)
	}
	return nil
}

// Provider returns the config of the selected completion provider.
func (c *Config) Provider() ProviderConfig {
	return c.Providers[c.BasicConfig.Provider]
}

// Database returns the config of the selected store.
func (c *Config) Database() DatabaseConfig {
	return c.Databases[c.BasicConfig.Database]
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CHEFWHO_DB"); v != "" {
		cfg.BasicConfig.Database = v
	}
	if v := os.Getenv("CHEFWHO_PROVIDER"); v != "" {
		cfg.BasicConfig.Provider = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.BasicConfig.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.BasicConfig.ServerAddress = ":" + v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		if cfg.Databases == nil {
			cfg.Databases = map[string]DatabaseConfig{}
		}
		dbCfg := cfg.Databases[cfg.BasicConfig.Database]
		dbCfg.DSN = v
		cfg.Databases[cfg.BasicConfig.Database] = dbCfg
	}

	if cfg.Providers == nil {
		cfg.Providers = map[string]ProviderConfig{}
	}
	provCfg := cfg.Providers[cfg.BasicConfig.Provider]
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		provCfg.BaseURL = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		provCfg.APIKey = v
	}
	if v := os.Getenv("CHEFWHO_MODEL"); v != "" {
		provCfg.Model = v
	}
	if provCfg != (ProviderConfig{}) {
		cfg.Providers[cfg.BasicConfig.Provider] = provCfg
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, portStr, err := net.SplitHostPort(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_ADDR: %w", err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("parse REDIS_ADDR port: %w", err)
		}
		cfg.Redis.Enabled = true
		cfg.Redis.Host = host
		cfg.Redis.Port = port
	}
	return nil
}

// resolveSQLitePath makes relative sqlite file DSNs relative to the config file.
func resolveSQLitePath(cfg *Config, dir string) {
	for name, dbCfg := range cfg.Databases {
		switch strings.ToLower(name) {
		case "sqlite", "sqlite3":
		default:
			continue
		}
		dsn := dbCfg.DSN
		if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") || filepath.IsAbs(dsn) {
			continue
		}
		dbCfg.DSN = filepath.Join(dir, dsn)
		cfg.Databases[name] = dbCfg
	}
}
