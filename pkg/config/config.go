package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server configuration
type Config struct {
	Port     string `mapstructure:"port"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`

	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Stats    StatsConfig    `mapstructure:"stats"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN renders the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis server was configured
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type StorageConfig struct {
	AWSRegion string `mapstructure:"aws_region"`
	AWSBucket string `mapstructure:"aws_bucket"`
	Prefix    string `mapstructure:"prefix"`
	Dir       string `mapstructure:"dir"`
}

// UseS3 reports whether uploads go to S3 instead of the local directory
func (s StorageConfig) UseS3() bool { return s.AWSBucket != "" }

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	Issuer          string        `mapstructure:"issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type StatsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

const devJWTSecret = "dev-secret-change-me"

// envBindings maps config keys to the environment variables the deployment sets
var envBindings = map[string]string{
	"port":                   "PORT",
	"env":                    "APP_ENV",
	"log_level":              "LOG_LEVEL",
	"database.host":          "DB_HOST",
	"database.port":          "DB_PORT",
	"database.user":          "DB_USER",
	"database.password":      "DB_PASS",
	"database.name":          "DB_NAME",
	"database.ssl_mode":      "DB_SSLMODE",
	"database.auto_migrate":  "DB_AUTO_MIGRATE",
	"redis.addr":             "REDIS_ADDR",
	"redis.password":         "REDIS_PASS",
	"storage.aws_region":     "AWS_REGION",
	"storage.aws_bucket":     "AWS_BUCKET",
	"storage.dir":            "STORAGE_DIR",
	"auth.jwt_secret":        "JWT_SECRET",
	"auth.access_token_ttl":  "JWT_ACCESS_TTL",
	"auth.refresh_token_ttl": "JWT_REFRESH_TTL",
	"stats.cache_ttl":        "STATS_CACHE_TTL",
}

// SetDefaults registers default values for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "jobboard")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.aws_region", "us-east-1")
	v.SetDefault("storage.aws_bucket", "")
	v.SetDefault("storage.prefix", "uploads")
	v.SetDefault("storage.dir", "./uploads")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "jobboard")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)

	v.SetDefault("stats.cache_ttl", 300*time.Second)
}

// Load reads defaults, the optional CONFIG_FILE and environment overrides
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" && !cfg.IsProduction() {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	return &cfg, nil
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is empty")
	}

	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("database host and name are required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is empty")
	}
	if c.IsProduction() && c.Auth.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt secret must be set in production")
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("refresh token ttl must exceed access token ttl")
	}

	if c.Stats.CacheTTL <= 0 {
		return fmt.Errorf("stats cache ttl must be positive: %v", c.Stats.CacheTTL)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
