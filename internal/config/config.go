package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	// Paymob-compatible gateway credentials
	PaymobAPIKey        string
	PaymobHMACKey       string
	PaymobIntegrationID string
	PaymobIframeID      string
	PaymobBaseURL       string

	FrontendURL string
}

const defaultPaymobBaseURL = "https://accept.paymobsolutions.com"

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort: os.Getenv("APP_PORT"),
		AppEnv:  os.Getenv("APP_ENV"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PaymobAPIKey:        os.Getenv("PAYMOB_API_KEY"),
		PaymobHMACKey:       os.Getenv("PAYMOB_HMAC_KEY"),
		PaymobIntegrationID: os.Getenv("PAYMOB_INTEGRATION_ID"),
		PaymobIframeID:      os.Getenv("PAYMOB_IFRAME_ID"),
		PaymobBaseURL:       os.Getenv("PAYMOB_BASE_URL"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	if cfg.PaymobBaseURL == "" {
		cfg.PaymobBaseURL = defaultPaymobBaseURL
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8000"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
