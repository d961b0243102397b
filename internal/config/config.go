package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBDSN            string        `mapstructure:"DB_DSN"`
	Environment      string        `mapstructure:"ENV"`
	LogFile          string        `mapstructure:"LOG_FILE"`
	TelegramToken    string        `mapstructure:"TELEGRAM_TOKEN"`
	AdminChatID      int64         `mapstructure:"ADMIN_CHAT_ID"`
	BcryptCost       int           `mapstructure:"BCRYPT_COST"`
	ReminderInterval time.Duration `mapstructure:"REMINDER_INTERVAL"`
	MetricsAddr      string        `mapstructure:"METRICS_ADDR"`
}

var keys = []string{
	"DB_DSN",
	"ENV",
	"LOG_FILE",
	"TELEGRAM_TOKEN",
	"ADMIN_CHAT_ID",
	"BCRYPT_COST",
	"REMINDER_INTERVAL",
	"METRICS_ADDR",
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return fromEnv(viper.New())
}

// fromEnv читает конфигурацию из переменных окружения через v
func fromEnv(v *viper.Viper) (*Config, error) {
	v.SetDefault("ENV", "development")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("REMINDER_INTERVAL", 24*time.Hour)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.ReminderInterval <= 0 {
		return nil, fmt.Errorf("REMINDER_INTERVAL must be positive, got %s", cfg.ReminderInterval)
	}

	return &cfg, nil
}

// NotificationsEnabled сообщает, настроены ли уведомления администратору
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.AdminChatID != 0
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
