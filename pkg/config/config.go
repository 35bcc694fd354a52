package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	Environment       string
	CORSOrigin        string
	FirebaseProject   string
	FirebaseApiKey    string
	StorageBucket     string
	CampusEmailDomain string
	ApiRateLimitMax   int
	LoginRateLimitMax int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "*"),
		FirebaseProject:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:    getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", ""),
		CampusEmailDomain: getEnv("CAMPUS_EMAIL_DOMAIN", "iiitdmj.ac.in"),
		ApiRateLimitMax:   getEnvAsInt("API_RATE_LIMIT_MAX", 100),
		LoginRateLimitMax: getEnvAsInt("LOGIN_RATE_LIMIT_MAX", 5),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
