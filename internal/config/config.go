package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

type Config struct {
	Port string

	DBPath string

	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	LLMTemperature float64
	LLMTimeout     time.Duration

	RedisAddr        string
	RabbitMQURL      string
	RabbitMQExchange string
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		DBPath:           getEnv("DB_PATH", "pedidos.db"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "order.exchange"),
	}
	if cfg.OpenAIKey == "" {
		return nil, ErrMissingAPIKey
	}

	temp, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.1"), 64)
	if err != nil {
		return nil, fmt.Errorf("LLM_TEMPERATURE: %w", err)
	}
	cfg.LLMTemperature = temp

	timeout, err := time.ParseDuration(getEnv("LLM_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT: %w", err)
	}
	cfg.LLMTimeout = timeout

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
