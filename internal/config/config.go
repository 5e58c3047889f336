package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool
	GinMode     string

	LogLevel  string
	LogFormat string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
	APIKeys   string

	CacheBackend string
	CacheSize    int
	CacheTTL     time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

var defaults = map[string]any{
	"port":             "8080",
	"db_host":          "localhost",
	"db_port":          "5432",
	"db_user":          "paycfg",
	"db_password":      "paycfg_secret",
	"db_name":          "paycfg",
	"db_sslmode":       "disable",
	"auto_migrate":     false,
	"gin_mode":         "debug",
	"log_level":        "info",
	"log_format":       "json",
	"jwt_secret":       "",
	"jwt_issuer":       "payment-config-service",
	"jwt_ttl":          "12h",
	"api_keys":         "",
	"cache_backend":    "lru",
	"cache_size":       1024,
	"cache_ttl":        "5m",
	"rate_limit_rps":   20.0,
	"rate_limit_burst": 40,
	"cors_origins":     "*",
}

// Load reads defaults, then the optional YAML file named by CONFIG_FILE, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return &Config{
		Port:           v.GetString("port"),
		DBHost:         v.GetString("db_host"),
		DBPort:         v.GetString("db_port"),
		DBUser:         v.GetString("db_user"),
		DBPassword:     v.GetString("db_password"),
		DBName:         v.GetString("db_name"),
		DBSSLMode:      v.GetString("db_sslmode"),
		AutoMigrate:    v.GetBool("auto_migrate"),
		GinMode:        v.GetString("gin_mode"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		JWTSecret:      v.GetString("jwt_secret"),
		JWTIssuer:      v.GetString("jwt_issuer"),
		JWTTTL:         v.GetDuration("jwt_ttl"),
		APIKeys:        v.GetString("api_keys"),
		CacheBackend:   v.GetString("cache_backend"),
		CacheSize:      v.GetInt("cache_size"),
		CacheTTL:       v.GetDuration("cache_ttl"),
		RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
		CORSOrigins:    splitList(v.GetString("cors_origins")),
	}, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" && c.GinMode != "debug" {
		errs = append(errs, errors.New("JWT_SECRET is required outside debug mode"))
	}
	if c.CacheBackend != "lru" && c.CacheBackend != "ttl" {
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be lru or ttl, got %q", c.CacheBackend))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
