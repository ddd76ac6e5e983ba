package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string

	RedisAddr     string
	RedisPassword string

	// S3-compatible storage for listing images (pre-signed PUT uploads)
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
	S3UseSSL    bool

	// HTML page scraped for TRY exchange rates
	CurrencySourceURL string

	AllowedOrigins []string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            getenvOrDefault("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Port:              getenvOrDefault("PORT", "8080"),
		RedisAddr:         getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey:       os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		S3UseSSL:          getenvOrDefault("S3_USE_SSL", "true") == "true",
		CurrencySourceURL: getenvOrDefault("CURRENCY_SOURCE_URL", "https://kur.doviz.com"),
		AllowedOrigins: []string{
			getenvOrDefault("FRONTEND_ORIGIN", "http://localhost:3000"),
			"https://landmark.com.tr",
			"https://www.landmark.com.tr",
		},
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
