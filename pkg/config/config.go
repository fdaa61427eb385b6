package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	AllowedOrigins []string

	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string
}

// Load reads an optional .env file and resolves the configuration.
// Missing .env is not an error; production sets variables directly.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           GetEnv("PORT", "3000"),
		MongoURI:       GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         GetEnv("MONGO_DB", "robeDB"),
		AllowedOrigins: splitCSV(GetEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		CloudinaryCloud:  GetEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    GetEnv("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: GetEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder: GetEnv("CLOUDINARY_FOLDER", "robe_products"),
	}
}

// GetEnv returns the value of an environment variable or a fallback.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
