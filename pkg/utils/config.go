package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Email    EmailConfig
	Payment  PaymentConfig
	Hold     HoldConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// PaymentConfig mengatur simulasi payment gateway
type PaymentConfig struct {
	LatencyMs      int
	FailurePercent int
}

// HoldConfig mengatur masa berlaku seat hold sebelum payment dikonfirmasi
type HoldConfig struct {
	ExpiryMinutes int
	SweepSeconds  int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "arena-hub")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("PAYMENT_LATENCY_MS", 2000)
	viper.SetDefault("PAYMENT_FAILURE_PERCENT", 0)
	viper.SetDefault("HOLD_EXPIRY_MINUTES", 10)
	viper.SetDefault("HOLD_SWEEP_SECONDS", 60)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Payment: PaymentConfig{
			LatencyMs:      viper.GetInt("PAYMENT_LATENCY_MS"),
			FailurePercent: viper.GetInt("PAYMENT_FAILURE_PERCENT"),
		},
		Hold: HoldConfig{
			ExpiryMinutes: viper.GetInt("HOLD_EXPIRY_MINUTES"),
			SweepSeconds:  viper.GetInt("HOLD_SWEEP_SECONDS"),
		},
	}

	return config, nil
}
