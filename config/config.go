package config

import (
	"os"
	"strconv"
)

// Config is the explicit startup configuration. main loads it once after
// godotenv; nothing else reads the environment directly.
type Config struct {
	Port         string
	MongoURI     string
	DBName       string
	JWTSecret    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	RedisAddr    string
}

var cfg *Config

func Load() *Config {
	cfg = &Config{
		Port:         getenv("PORT", "6000"),
		MongoURI:     getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:       getenv("DB_NAME", "carelink"),
		JWTSecret:    getenv("JWT_SECRET", ""),
		SMTPHost:     getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUser:     getenv("EMAIL", ""),
		SMTPPassword: getenv("EMAIL_PASSWORD", ""),
		MailFrom:     getenv("MAIL_FROM", getenv("EMAIL", "")),
		RedisAddr:    getenv("REDIS_ADDR", ""),
	}
	return cfg
}

// Get returns the loaded config, loading defaults if Load was never called.
func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
