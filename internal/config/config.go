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
	AppPort    string
	APIBase    string
	JWTSecret  string
	AppEnv     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		APIBase:    os.Getenv("API_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AppEnv:     os.Getenv("APP_ENV"),
	}

	if cfg.APIBase == "" {
		cfg.APIBase = "/api/v1"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "5000"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
