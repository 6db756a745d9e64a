package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// AppConfig collects everything read from the environment. Load applies
// development fallbacks so the app boots without a .env file.
type AppConfig struct {
	Port    string
	BaseURL string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	AdminUsername string
	AdminPassword string

	MailEndpoint string
	MailAPIKey   string
	MailSender   string

	UploadDir string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() AppConfig {
	return AppConfig{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: getEnv("DB_PASS", ""),
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "3306"),
		DBName: getEnv("DB_NAME", "multimedia_requests"),

		// Same credential pair the frontend shipped with; override in .env.
		AdminUsername: getEnv("ADMIN_USERNAME", "multimediabugemco"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "multimediabugemco@2025"),

		MailEndpoint: getEnv("MAIL_ENDPOINT", "https://api.resend.com/emails"),
		MailAPIKey:   getEnv("MAIL_API_KEY", ""),
		MailSender:   getEnv("MAIL_SENDER", "onboarding@resend.dev"),

		UploadDir: getEnv("UPLOAD_DIR", "public/uploads"),
	}
}

// InitDB opens the MySQL connection described by cfg.
func InitDB(cfg AppConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
