package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"catastro-service/internal/constants"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port           string
	MaxUploadBytes int64
	AllowedOrigins []string
}

type CatastroConfig struct {
	BaseURL      string
	Workers      int
	RequestDelay time.Duration
	// RequestTimeout - предел ожидания одного ответа реестра
	RequestTimeout time.Duration
}

// RabbitMQConfig - публикация совпавших объектов, выключена по умолчанию
type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	HTTP         HTTPConfig
	Catastro     CatastroConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig читает .env (если он есть), затем переменные окружения.
// Отсутствие файла .env не ошибка: в контейнере все приходит из окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found (path: %v), using environment only\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "catastro-service")

	cfg.HTTP.Port = getEnvAsString("HTTP_PORT", "8080")
	cfg.HTTP.MaxUploadBytes = int64(getEnvAsInt("HTTP_MAX_UPLOAD_MB", 20)) << 20
	cfg.HTTP.AllowedOrigins = splitList(getEnvAsString("CORS_ALLOWED_ORIGINS", ""))

	cfg.Catastro.BaseURL = getEnvAsString("CATASTRO_BASE_URL", constants.CatastroDNPRCURL)
	cfg.Catastro.Workers = getEnvAsInt("CATASTRO_WORKERS", 1)
	cfg.Catastro.RequestDelay = time.Duration(getEnvAsInt("CATASTRO_REQUEST_DELAY_MS", 0)) * time.Millisecond
	cfg.Catastro.RequestTimeout = time.Duration(getEnvAsInt("CATASTRO_REQUEST_TIMEOUT_MS", 15000)) * time.Millisecond

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", constants.CatastroExchange)
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "info")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		return fmt.Errorf("HTTP_PORT must be numeric, got %q", c.HTTP.Port)
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_UPLOAD_MB must be positive")
	}
	if c.Catastro.Workers < 1 {
		return fmt.Errorf("CATASTRO_WORKERS must be at least 1, got %d", c.Catastro.Workers)
	}
	if c.Catastro.RequestDelay < 0 {
		return fmt.Errorf("CATASTRO_REQUEST_DELAY_MS cannot be negative")
	}
	if c.Catastro.RequestTimeout <= 0 {
		return fmt.Errorf("CATASTRO_REQUEST_TIMEOUT_MS must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt логирует предупреждение, если значение есть, но не является числом
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
