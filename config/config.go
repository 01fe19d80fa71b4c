package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	TextLKApiToken string
	TextLKApiUrl   string
	TextLKSenderID string

	SendgridKey string
	EmailSender string
	AppName     string

	UploadDir   string
	SlipURLTTL  int // seconds a signed payment-slip link stays valid
	AdminMobile string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		TextLKApiToken: getEnv("TEXTLK_API_TOKEN", ""),
		TextLKApiUrl:   getEnv("TEXTLK_API_URL", "https://app.text.lk/api/v3/sms/send"),
		TextLKSenderID: getEnv("TEXTLK_SENDER_ID", "IO Builds"),

		SendgridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "onboarding@iobuilds.academy"),
		AppName:     getEnv("APP_NAME", "IO Builds Academy"),

		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		SlipURLTTL:  getEnvInt("SLIP_URL_TTL", 300),
		AdminMobile: getEnv("ADMIN_MOBILE", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.TextLKApiToken == "" {
		log.Println("Warning: TEXTLK_API_TOKEN not set. OTP and notification SMS will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
