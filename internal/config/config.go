package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host                string   `yaml:"host"`
	Port                int      `yaml:"port"`
	Env                 string   `yaml:"env"`
	BaseURL             string   `yaml:"base_url"`
	CORSOrigins         []string `yaml:"cors_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

type DatabaseConfig struct {
	DSN          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Algorithm  string `yaml:"algorithm"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type StripeConfig struct {
	APIKey         string `yaml:"api_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	APIURL         string `yaml:"api_url"`
	// SweepIntervalSeconds - период фоновой сверки pending платежей, <0 отключает
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
}

type AdminConfig struct {
	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
	FirstAdminName     string `yaml:"first_admin_name"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Password PasswordConfig `yaml:"password"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Email    EmailConfig    `yaml:"email"`
	Admin    AdminConfig    `yaml:"admin"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

const defaultConfigPath = "config.yaml"

// Load собирает конфигурацию: .env -> config.yaml (если есть) -> переменные окружения.
// Вызывается один раз в main, дальше *Config передается явно.
func Load() (*Config, error) {
	// .env не обязателен (в docker переменные приходят снаружи)
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv - то же, что Load, но с явным источником переменных (для тестов).
func LoadWithEnv(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString(&c.Server.Host, "SERVER_HOST")
	setString(&c.Server.Env, "SERVER_ENV")
	setString(&c.Server.BaseURL, "BASE_URL")
	if v := getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.JWT.Algorithm, "JWT_ALGORITHM")
	setString(&c.Stripe.APIKey, "STRIPE_API_KEY")
	setString(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Stripe.APIURL, "STRIPE_API_URL")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setString(&c.Email.SMTPUser, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.FromEmail, "EMAIL_FROM")
	setString(&c.Admin.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&c.Admin.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
	setString(&c.Admin.FirstAdminName, "FIRST_ADMIN_NAME")
	setString(&c.Sentry.DSN, "SENTRY_DSN")

	for key, dst := range map[string]*int{
		"SERVER_PORT":                   &c.Server.Port,
		"ACCESS_TOKEN_EXPIRE_MINUTES":   &c.JWT.TTLMinutes,
		"BCRYPT_COST":                   &c.Password.BcryptCost,
		"SMTP_PORT":                     &c.Email.SMTPPort,
		"STRIPE_SWEEP_INTERVAL_SECONDS": &c.Stripe.SweepIntervalSeconds,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8001
	}
	if c.Server.Env == "" {
		c.Server.Env = "production"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}

	if c.JWT.Algorithm == "" {
		c.JWT.Algorithm = "HS256"
	}
	if c.JWT.TTLMinutes == 0 {
		c.JWT.TTLMinutes = 1440
	}
	if c.Password.BcryptCost == 0 {
		c.Password.BcryptCost = bcrypt.DefaultCost
	}
	if c.Stripe.TimeoutSeconds == 0 {
		c.Stripe.TimeoutSeconds = 30
	}
	if c.Stripe.SweepIntervalSeconds == 0 {
		c.Stripe.SweepIntervalSeconds = 300
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Continental Academy"
	}
	if c.Admin.FirstAdminName == "" {
		c.Admin.FirstAdminName = "Administrator"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported jwt algorithm %q", c.JWT.Algorithm)
	}
	if c.JWT.TTLMinutes < 0 {
		return errors.New("jwt ttl must be positive")
	}
	if c.Password.BcryptCost < bcrypt.MinCost || c.Password.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}

func (c *Config) StripeTimeout() time.Duration {
	return time.Duration(c.Stripe.TimeoutSeconds) * time.Second
}

// SweepInterval - 0, если фоновая сверка выключена
func (c *Config) SweepInterval() time.Duration {
	if c.Stripe.SweepIntervalSeconds < 0 {
		return 0
	}
	return time.Duration(c.Stripe.SweepIntervalSeconds) * time.Second
}

// WebhookURL - публичный адрес, на который Stripe шлет события
func (c *Config) WebhookURL() string {
	return c.Server.BaseURL + "/api/webhook/stripe"
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
