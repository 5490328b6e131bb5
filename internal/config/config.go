package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string

	StaticDir   string
	MediaDir    string
	ContentDir  string
	SiteProfile string

	VideoMaxAge     int
	VideoChunkSize  int
	PageMaxAge      int
	CompressMinSize int

	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SMTPServer   string
	SMTPPort     int
	MailUsername string
	MailPassword string
	EmailFrom    string
	EmailTo      string
	MailWorkers  int
	MailQueue    int

	ContactPerHour int
	ContactBurst   int
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	staticDir := getEnv("STATIC_DIR", "./static")

	return &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("SITE_URL", ""),

		StaticDir:   staticDir,
		MediaDir:    getEnv("MEDIA_DIR", staticDir+"/videos"),
		ContentDir:  getEnv("CONTENT_DIR", "./content"),
		SiteProfile: getEnv("SITE_PROFILE", ""),

		VideoMaxAge:     getEnvInt("VIDEO_MAX_AGE", 3600),
		VideoChunkSize:  getEnvInt("VIDEO_CHUNK_SIZE", 1<<20),
		PageMaxAge:      getEnvInt("PAGE_MAX_AGE", 300),
		CompressMinSize: getEnvInt("COMPRESS_MIN_SIZE", 1024),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "./portfolio.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "portfolio"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SMTPServer:   getEnv("SMTP_SERVER", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", ""),
		EmailTo:      getEnv("EMAIL_TO", ""),
		MailWorkers:  getEnvInt("MAIL_WORKERS", 2),
		MailQueue:    getEnvInt("MAIL_QUEUE", 64),

		ContactPerHour: getEnvInt("CONTACT_PER_HOUR", 10),
		ContactBurst:   getEnvInt("CONTACT_BURST", 3),
	}
}

// MailConfigured reports whether every SMTP setting needed to deliver mail is present.
func (c *Config) MailConfigured() bool {
	return c.SMTPServer != "" && c.SMTPPort > 0 && c.MailUsername != "" &&
		c.MailPassword != "" && c.EmailFrom != "" && c.EmailTo != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s (%q), using %d", key, value, fallback)
		return fallback
	}
	return n
}
