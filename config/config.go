package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// RabbitURL enables the lifecycle-event publisher when set.
	RabbitURL string

	// PMS credentials; the PMS routes are not registered when PMSBaseURL is empty.
	PMSBaseURL   string
	PMSAuthCode  string
	PMSHotelCode string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "retreat_backoffice"),
		RabbitURL:    os.Getenv("RABBITMQ_URL"),
		PMSBaseURL:   os.Getenv("PMS_BASE_URL"),
		PMSAuthCode:  os.Getenv("PMS_AUTH_CODE"),
		PMSHotelCode: os.Getenv("PMS_HOTEL_CODE"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
