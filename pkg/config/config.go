package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendOracle   = "oracle"
	BackendHybrid   = "hybrid"
	BackendMongo    = "mongo"
)

type Config struct {
	ServerPort  string
	Environment string

	JWTSecret string
	JWTExpiry int64

	// Storage selection and connection parameters. The backend is chosen
	// once at startup; there is no request-time switching.
	StorageBackend string
	DatabaseURL    string
	OracleURL      string
	MongoURI       string
	MongoDatabase  string
	StorageTimeout time.Duration

	SendgridAPIKey string
	EmailFrom      string
	AppBaseURL     string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry: getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours

		StorageBackend: getEnv("STORAGE_BACKEND", BackendMemory),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		OracleURL:      getEnv("ORACLE_URL", ""),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB", "farmstand"),
		StorageTimeout: time.Duration(getEnvAsInt64("STORAGE_TIMEOUT", 5)) * time.Second,

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@farmstand.local"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
