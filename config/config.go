package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Contacts ContactsConfig
}

type ServerConfig struct {
	AppEnv   string
	GRPCPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLiteConfig struct {
	Path         string
	BusyTimeout  int // milliseconds
	MaxOpenConns int
	SeedOnStart  bool
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	ListTTL  int // seconds
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
}

type ContactsConfig struct {
	// PhoneRegion is the default region used to parse phone numbers written without a country code.
	PhoneRegion string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			GRPCPort: getEnv("GRPC_PORT", ":8084"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		SQLite: SQLiteConfig{
			Path:         getEnv("SQLITE_PATH", "omnipos_stock.db"),
			BusyTimeout:  getEnvInt("SQLITE_BUSY_TIMEOUT", 5000),
			MaxOpenConns: getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
			SeedOnStart:  getEnvBool("SQLITE_SEED_ON_START", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			ListTTL:  getEnvInt("REDIS_LIST_TTL", 300),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_SALES", "pos.sales"),
			GroupID: getEnv("KAFKA_GROUP_STOCK", "stock"),
		},
		Contacts: ContactsConfig{
			PhoneRegion: getEnv("CONTACT_PHONE_REGION", "US"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
