package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если после загрузки конфигурация некорректна
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения для секретов, которые не хранятся в config.toml
const (
	EnvDBPassword        = "DB_PASSWORD"
	EnvAdminPasswordHash = "ADMIN_PASSWORD_HASH"
	EnvAdminJWTSecret    = "ADMIN_JWT_SECRET"
	EnvLicenseSecret     = "LICENSE_SECRET"
	EnvLicenseServerURL  = "LICENSE_SERVER_URL"
	EnvSiteURL           = "SITE_URL"
	EnvHTTPPort          = "HTTP_PORT"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Admin     AdminConfig     `toml:"admin"`
	License   LicenseConfig   `toml:"license"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// Брать адрес клиента из X-Forwarded-For / X-Real-IP (сервис за reverse proxy)
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type AdminConfig struct {
	Username      string `toml:"username"`
	PasswordHash  string `toml:"password_hash"` // bcrypt
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

type LicenseConfig struct {
	ServerURL            string `toml:"server_url"`
	Timeout              int    `toml:"timeout"` // секунды
	Secret               string `toml:"secret"`
	Plugin               string `toml:"plugin"`
	Platform             string `toml:"platform"`
	SiteURL              string `toml:"site_url"`
	GracePeriodDays      int    `toml:"grace_period_days"`
	RecheckIntervalHours int    `toml:"recheck_interval_hours"`
	CacheTTLSeconds      int    `toml:"cache_ttl_seconds"`
	RecheckSchedule      string `toml:"recheck_schedule"` // cron, UTC
	RecheckTimeout       int    `toml:"recheck_timeout"`  // секунды
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает TOML файл, подмешивает .env и переменные окружения,
// проставляет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrideString(&c.Database.Password, EnvDBPassword)
	overrideString(&c.Admin.PasswordHash, EnvAdminPasswordHash)
	overrideString(&c.Admin.JWTSecret, EnvAdminJWTSecret)
	overrideString(&c.License.Secret, EnvLicenseSecret)
	overrideString(&c.License.ServerURL, EnvLicenseServerURL)
	overrideString(&c.License.SiteURL, EnvSiteURL)

	if v, ok := os.LookupEnv(EnvHTTPPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}

	return nil
}

func overrideString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 30)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-simple-booking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	setDefault(&c.Admin.TokenTTLHours, 12)

	setDefault(&c.License.Timeout, 15)
	setDefault(&c.License.GracePeriodDays, 7)
	setDefault(&c.License.RecheckIntervalHours, 24)
	setDefault(&c.License.CacheTTLSeconds, 60)
	setDefault(&c.License.RecheckTimeout, 30)
	if c.License.RecheckSchedule == "" {
		c.License.RecheckSchedule = "0 3,15 * * *"
	}
	if c.License.Plugin == "" {
		c.License.Plugin = "smc-simple-booking"
	}
	if c.License.Platform == "" {
		c.License.Platform = "go"
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	setDefault(&c.RateLimit.Burst, 10)
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Admin.Username == "" {
		problems = append(problems, "admin.username is required")
	}
	if c.Admin.PasswordHash == "" {
		problems = append(problems, "admin.password_hash is required ("+EnvAdminPasswordHash+")")
	}
	if c.Admin.JWTSecret == "" {
		problems = append(problems, "admin.jwt_secret is required ("+EnvAdminJWTSecret+")")
	}
	if c.License.Secret == "" {
		problems = append(problems, "license.secret is required ("+EnvLicenseSecret+")")
	}
	if c.License.SiteURL == "" {
		problems = append(problems, "license.site_url is required ("+EnvSiteURL+")")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
