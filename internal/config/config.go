// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	CaptchaProvider        string `mapstructure:"CAPTCHA_PROVIDER"`
	CaptchaBypass          bool   `mapstructure:"CAPTCHA_BYPASS"`
	TurnstileSecret        string `mapstructure:"TURNSTILE_SECRET"`
	HCaptchaSecret         string `mapstructure:"HCAPTCHA_SECRET"`
	CommentCaptchaRequired bool   `mapstructure:"COMMENT_CAPTCHA_REQUIRED"`

	MailTransport        string `mapstructure:"MAIL_TRANSPORT"`
	MailSuppress         bool   `mapstructure:"MAIL_SUPPRESS"`
	SMTPHost             string `mapstructure:"SMTP_HOST"`
	SMTPPort             int    `mapstructure:"SMTP_PORT"`
	SMTPUsername         string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword         string `mapstructure:"SMTP_PASSWORD"`
	PostmarkServerToken  string `mapstructure:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `mapstructure:"POSTMARK_ACCOUNT_TOKEN"`
	MailSender           string `mapstructure:"MAIL_SENDER"`
	MailTo               string `mapstructure:"MAIL_TO"`
	MailSubjectPrefix    string `mapstructure:"MAIL_SUBJECT_PREFIX"`

	ContactRateLimit string `mapstructure:"CONTACT_RATE_LIMIT"`
	CommentRateLimit string `mapstructure:"COMMENT_RATE_LIMIT"`
	RateLimitStore   string `mapstructure:"RATE_LIMIT_STORE"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file is optional; environment variables can carry
	// the full configuration.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading profile config 'config.%s.yml': %w", env, err)
			}
		}
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "portfolio")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("CAPTCHA_PROVIDER", "turnstile")
	viper.SetDefault("CAPTCHA_BYPASS", false)
	viper.SetDefault("COMMENT_CAPTCHA_REQUIRED", true)
	viper.SetDefault("MAIL_TRANSPORT", "smtp")
	viper.SetDefault("MAIL_SUPPRESS", false)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_SUBJECT_PREFIX", "[Contact]")
	viper.SetDefault("CONTACT_RATE_LIMIT", "3/minute")
	viper.SetDefault("COMMENT_RATE_LIMIT", "5/minute")
	viper.SetDefault("RATE_LIMIT_STORE", "memory")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// IsProduction reports whether the app runs with production strictness.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.RateLimitStore {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("RATE_LIMIT_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown RATE_LIMIT_STORE %q", c.RateLimitStore)
	}

	switch c.MailTransport {
	case "smtp", "postmark":
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport)
	}

	if c.IsProduction() {
		if c.CaptchaBypass {
			return errors.New("CAPTCHA_BYPASS must not be enabled in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
		if !c.MailSuppress && (c.MailSender == "" || c.MailTo == "") {
			return errors.New("MAIL_SENDER and MAIL_TO are required in production unless MAIL_SUPPRESS is set")
		}
	}

	return nil
}
