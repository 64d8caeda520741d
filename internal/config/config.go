package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIBaseURL = "http://localhost:4002"
	DefaultAPITimeout = 10000 // milliseconds
)

type Config struct {
	API struct {
		BaseURL   string `mapstructure:"base_url"`
		TimeoutMS int    `mapstructure:"timeout_ms"`
	} `mapstructure:"api"`

	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		AuthRatePerMinute  int      `mapstructure:"auth_rate_per_minute"`
		AuthBurst          int      `mapstructure:"auth_burst"`
	} `mapstructure:"server"`

	Session struct {
		Backend       string `mapstructure:"backend"` // file | redis
		Dir           string `mapstructure:"dir"`
		RedisAddr     string `mapstructure:"redis_addr"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
		RedisPrefix   string `mapstructure:"redis_prefix"`
	} `mapstructure:"session"`

	Log struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		TimeFormat string `mapstructure:"time_format"`
		Output     string `mapstructure:"output"`
	} `mapstructure:"log"`

	Razorpay struct {
		KeyID     string `mapstructure:"key_id"`
		KeySecret string `mapstructure:"key_secret"`
	} `mapstructure:"razorpay"`

	// Archive is an S3 compatible bucket (R2 in production) for generated invoice PDFs.
	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Bucket    string `mapstructure:"bucket"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"archive"`

	Company struct {
		Name    string `mapstructure:"name"`
		Tagline string `mapstructure:"tagline"`
		Address string `mapstructure:"address"`
		Email   string `mapstructure:"email"`
		Phone   string `mapstructure:"phone"`
		Website string `mapstructure:"website"`
	} `mapstructure:"company"`

	Refresh struct {
		Schedule string `mapstructure:"schedule"`
	} `mapstructure:"refresh"`
}

// Load reads configs/config.yaml (optional), .env (optional) and the environment.
func Load() (*Config, error) {
	return LoadFile("configs/config.yaml")
}

func LoadFile(path string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("AGENCY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultAPIBaseURL)
	v.SetDefault("api.timeout_ms", DefaultAPITimeout)

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:8090"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("server.auth_rate_per_minute", 10)
	v.SetDefault("server.auth_burst", 5)

	v.SetDefault("session.backend", "file")
	v.SetDefault("session.dir", defaultSessionDir())
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.redis_password", "")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.redis_prefix", "agency-console:session:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.time_format", time.RFC3339)
	v.SetDefault("log.output", "stderr")

	v.SetDefault("razorpay.key_id", "")
	v.SetDefault("razorpay.key_secret", "")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.region", "auto")
	v.SetDefault("archive.access_key", "")
	v.SetDefault("archive.secret_key", "")
	v.SetDefault("archive.prefix", "invoices/")

	v.SetDefault("company.name", "Agency")
	v.SetDefault("company.tagline", "Digital Solutions")
	v.SetDefault("company.address", "")
	v.SetDefault("company.email", "")
	v.SetDefault("company.phone", "")
	v.SetDefault("company.website", "")

	v.SetDefault("refresh.schedule", "0 */5 * * * *")
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/agency-console"
	}
	return ".agency-console"
}

// applyEnvOverrides handles variables whose names do not follow the key mapping.
func applyEnvOverrides(cfg *Config) {
	if base := os.Getenv("AGENCY_API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if timeout := os.Getenv("AGENCY_API_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil && n > 0 {
			cfg.API.TimeoutMS = n
		}
	}
	if keyID := os.Getenv("RAZORPAY_KEY_ID"); keyID != "" {
		cfg.Razorpay.KeyID = keyID
	}
	if keySecret := os.Getenv("RAZORPAY_KEY_SECRET"); keySecret != "" {
		cfg.Razorpay.KeySecret = keySecret
	}
	if key := os.Getenv("R2_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("R2_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
}

func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.TimeoutMS <= 0 {
		c.API.TimeoutMS = DefaultAPITimeout
	}
	switch c.Session.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("session.backend must be file or redis, got %q", c.Session.Backend)
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return fmt.Errorf("archive.bucket is required when archive is enabled")
	}
	return nil
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

func (c *Config) RazorpayEnabled() bool {
	return c.Razorpay.KeyID != "" && c.Razorpay.KeySecret != ""
}
