package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port         string
	AppEnv       string
	RedisURL     string
	KafkaBrokers string
	KafkaTopic   string
	TaxRate      decimal.Decimal
	CartTTL      time.Duration
	CatalogPath  string
}

func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8086"),
		AppEnv:       getEnv("APP_ENV", "development"),
		RedisURL:     getEnv("REDIS_URL", "redis://redis:6379"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order.placed"),
		TaxRate:      getEnvDecimal("TAX_RATE", "0.18"),
		CartTTL:      time.Hour * time.Duration(getEnvInt("CART_TTL_HOURS", 24*7)),
		CatalogPath:  getEnv("CATALOG_PATH", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvDecimal(key, defaultVal string) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		if d, err := decimal.NewFromString(val); err == nil && !d.IsNegative() {
			return d
		}
	}
	d, _ := decimal.NewFromString(defaultVal)
	return d
}
