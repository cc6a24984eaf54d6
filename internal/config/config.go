package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	OwnerChatID   int64
	Environment   string
	MetricsAddr   string

	// Шаблон рабочего дня: слоты с WorkDayStartHour до WorkDayEndHour
	// с шагом SlotStepMinutes. Фиксированная константа бизнеса, не вычисляется.
	WorkDayStartHour int
	WorkDayEndHour   int
	SlotStepMinutes  int

	// Горизонты расписания в днях: для клиента и для разблокировки админом.
	ClientHorizonDays int
	AdminHorizonDays  int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),

		WorkDayStartHour:  9,
		WorkDayEndHour:    18,
		SlotStepMinutes:   30,
		ClientHorizonDays: 7,
		AdminHorizonDays:  21,
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":9090"
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	ownerRaw := os.Getenv("OWNER_CHAT_ID")
	if ownerRaw == "" {
		return nil, fmt.Errorf("OWNER_CHAT_ID is required but not set")
	}
	ownerID, err := strconv.ParseInt(ownerRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse OWNER_CHAT_ID: %w", err)
	}
	cfg.OwnerChatID = ownerID

	return cfg, nil
}

// IsOwner проверяет, принадлежит ли чат владельцу студии.
func (c *Config) IsOwner(chatID int64) bool {
	return chatID == c.OwnerChatID
}
