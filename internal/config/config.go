package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StorageLocal      = "local"
	StorageCloudinary = "cloudinary"
)

// Email drivers
const (
	EmailLog      = "log"
	EmailSMTP     = "smtp"
	EmailSendGrid = "sendgrid"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath   string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicURL     string `yaml:"public_url" env:"SERVER_PUBLIC_URL"`
		UploadTimeout string `yaml:"upload_timeout" env:"SERVER_UPLOAD_TIMEOUT"`
		// MaxUploadMB bounds multipart bodies on /api/upload and /api/admin/upload.
		MaxUploadMB int `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsPath  string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH"`
	} `yaml:"database"`

	Mongo struct {
		URI      string `yaml:"uri" env:"MONGODB_URI"`
		Database string `yaml:"database" env:"MONGODB_DB"`
		Timeout  string `yaml:"timeout" env:"MONGODB_TIMEOUT"`
	} `yaml:"mongo"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Admin struct {
		Token string `yaml:"token" env:"ADMIN_TOKEN"`
	} `yaml:"admin"`

	Storage struct {
		Driver              string `yaml:"driver" env:"STORAGE_DRIVER"`
		CloudinaryCloudName string `yaml:"cloudinary_cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
		CloudinaryAPIKey    string `yaml:"cloudinary_api_key" env:"CLOUDINARY_API_KEY"`
		CloudinaryAPISecret string `yaml:"cloudinary_api_secret" env:"CLOUDINARY_API_SECRET"`
		ChunkSizeMB         int    `yaml:"chunk_size_mb" env:"STORAGE_CHUNK_SIZE_MB"`
	} `yaml:"storage"`

	Email struct {
		Driver         string `yaml:"driver" env:"EMAIL_DRIVER"`
		SMTPHost       string `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort       int    `yaml:"smtp_port" env:"SMTP_PORT"`
		SMTPUser       string `yaml:"smtp_user" env:"SMTP_USER"`
		SMTPPassword   string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
		SMTPTLS        bool   `yaml:"smtp_tls" env:"SMTP_TLS"`
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
		FromName       string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
		FromEmail      string `yaml:"from_email" env:"EMAIL_FROM"`
		CollegeName    string `yaml:"college_name" env:"COLLEGE_NAME"`
		LoginURL       string `yaml:"login_url" env:"LOGIN_URL"`
	} `yaml:"email"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		Channel  string `yaml:"channel" env:"REDIS_CHANNEL"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Feed struct {
		PageSize int `yaml:"page_size" env:"FEED_PAGE_SIZE"`
	} `yaml:"feed"`
}

// LoadConfig loads configuration from .env files, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadDotEnv(".env.local", ".env"); err != nil {
		return nil, err
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv loads the first files found; variables already set in the process win.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./storage"
	config.Server.PublicURL = "http://localhost:8080"
	config.Server.UploadTimeout = "120s"
	config.Server.MaxUploadMB = 50

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "collegesocial"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsPath = "migrations"

	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "collegesocial"
	config.Mongo.Timeout = "10s"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "collegesocial"

	config.Storage.Driver = StorageLocal
	config.Storage.ChunkSizeMB = 6

	config.Email.Driver = EmailLog
	config.Email.SMTPPort = 587
	config.Email.SMTPTLS = true
	config.Email.FromName = "College Social"
	config.Email.FromEmail = "no-reply@collegesocial.local"
	config.Email.CollegeName = "College"
	config.Email.LoginURL = "http://localhost:3000/login"

	config.Redis.Channel = "collegesocial:messages"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Feed.PageSize = 10
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return errors.New("database host is required")
	}
	if config.Mongo.URI == "" {
		return errors.New("mongo uri is required")
	}
	if config.JWT.Secret == "" {
		return errors.New("JWT secret is required")
	}
	if config.Admin.Token == "" {
		return errors.New("admin token is required")
	}

	for name, value := range map[string]string{
		"JWT access token expiration": config.JWT.AccessTokenExpiration,
		"upload timeout":              config.Server.UploadTimeout,
		"mongo timeout":               config.Mongo.Timeout,
		"connection max lifetime":     config.Database.ConnMaxLifetime,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch config.Storage.Driver {
	case StorageLocal:
	case StorageCloudinary:
		if config.Storage.CloudinaryCloudName == "" || config.Storage.CloudinaryAPIKey == "" || config.Storage.CloudinaryAPISecret == "" {
			return errors.New("cloudinary credentials are required for the cloudinary storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	switch config.Email.Driver {
	case EmailLog:
	case EmailSMTP:
		if config.Email.SMTPHost == "" {
			return errors.New("smtp host is required for the smtp email driver")
		}
	case EmailSendGrid:
		if config.Email.SendGridAPIKey == "" {
			return errors.New("sendgrid api key is required for the sendgrid email driver")
		}
	default:
		return fmt.Errorf("unknown email driver %q", config.Email.Driver)
	}

	if config.Feed.PageSize <= 0 {
		return errors.New("feed page size must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AccessTokenTTL returns the parsed JWT lifetime. Validated at load time.
func (c *Config) AccessTokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// UploadTimeoutDuration returns the parsed object storage timeout.
func (c *Config) UploadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Server.UploadTimeout)
	return d
}

// MongoTimeout returns the parsed document store connect timeout.
func (c *Config) MongoTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Mongo.Timeout)
	return d
}

// RedisEnabled reports whether cross-instance push fan-out is configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
