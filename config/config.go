// File: /config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Email     EmailConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Jobs      JobsConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	PublicURL       string // used to build add-friend links
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	Driver string // mysql, postgres or memory
	URL    string
	Seed   bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	URL      string
	Enabled  bool
	CacheTTL time.Duration
}

type StorageConfig struct {
	Driver        string // local or minio
	UploadDir     string
	MaxUploadSize int64

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string
}

// EmailConfig is optional: an empty SMTPHost disables outgoing mail.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	ServiceName       string
}

type JobsConfig struct {
	StatsReconcileInterval time.Duration // 0 disables the job
}

// Load reads configuration from defaults, an optional config.yaml and
// PHOTOSHARE_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PHOTOSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.photoshare")
	v.AddConfigPath("/etc/photoshare")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			PublicURL:       v.GetString("server.public_url"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			AllowedOrigins:  v.GetStringSlice("server.allowed_origins"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database.driver")),
			URL:    v.GetString("database.url"),
			Seed:   v.GetBool("database.seed"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			Enabled:  v.GetString("redis.url") != "",
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("storage.driver")),
			UploadDir:      v.GetString("storage.upload_dir"),
			MaxUploadSize:  v.GetInt64("storage.max_upload_size"),
			MinioEndpoint:  v.GetString("storage.minio_endpoint"),
			MinioAccessKey: v.GetString("storage.minio_access_key"),
			MinioSecretKey: v.GetString("storage.minio_secret_key"),
			MinioBucket:    v.GetString("storage.minio_bucket"),
			MinioUseSSL:    v.GetBool("storage.minio_use_ssl"),
			MinioPublicURL: v.GetString("storage.minio_public_url"),
		},
		Email: EmailConfig{
			SMTPHost:     v.GetString("email.smtp_host"),
			SMTPPort:     v.GetInt("email.smtp_port"),
			SMTPUsername: v.GetString("email.smtp_username"),
			SMTPPassword: v.GetString("email.smtp_password"),
			FromEmail:    v.GetString("email.from_email"),
			FromName:     v.GetString("email.from_name"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			JaegerURL:         v.GetString("telemetry.jaeger_url"),
			PrometheusEnabled: v.GetBool("telemetry.prometheus_enabled"),
			ServiceName:       v.GetString("telemetry.service_name"),
		},
		Jobs: JobsConfig{
			StatsReconcileInterval: v.GetDuration("jobs.stats_reconcile_interval"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.public_url", "http://localhost:3000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.url", "user:password@tcp(localhost:3306)/photoshare?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.seed", false)

	v.SetDefault("jwt.secret", "your-secret-key")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.cache_ttl", 30*time.Second)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_upload_size", 5*1024*1024)
	v.SetDefault("storage.minio_bucket", "photoshare")

	v.SetDefault("email.smtp_port", 2525)
	v.SetDefault("email.from_email", "noreply@photoshare.local")
	v.SetDefault("email.from_name", "PhotoShare")

	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "json")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.jaeger_url", "")
	v.SetDefault("telemetry.prometheus_enabled", true)
	v.SetDefault("telemetry.service_name", "photoshare-api")

	v.SetDefault("jobs.stats_reconcile_interval", time.Duration(0))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for driver %q", c.Database.Driver)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt.ttl must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Storage.Driver {
	case "local":
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("storage.upload_dir is required for local storage")
		}
	case "minio":
		if c.Storage.MinioEndpoint == "" || c.Storage.MinioBucket == "" {
			return fmt.Errorf("storage.minio_endpoint and storage.minio_bucket are required for minio storage")
		}
	default:
		return fmt.Errorf("unsupported storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("storage.max_upload_size must be positive")
	}
	if c.Jobs.StatsReconcileInterval < 0 {
		return fmt.Errorf("jobs.stats_reconcile_interval must not be negative")
	}
	return nil
}

// EmailEnabled reports whether outgoing mail is configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.SMTPHost != ""
}
