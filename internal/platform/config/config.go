package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBase   string
	APIKey    string
	APISecret string

	OutputDir string

	SubmissionCount int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIBase:         getEnv("CF_API_BASE", "https://codeforces.com/api"),
		APIKey:          getEnv("CF_API_KEY", ""),
		APISecret:       getEnv("CF_API_SECRET", ""),
		OutputDir:       getEnv("INSIGHTS_OUTPUT_DIR", "."),
		SubmissionCount: getEnvAsInt("CF_SUBMISSION_COUNT", 10000),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
