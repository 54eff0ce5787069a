package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	LogLevel   string
	APIKey     string

	PocketIDURL      string
	PocketIDAPIKey   string
	PocketIDPageSize int
	PocketIDTimeout  time.Duration

	OutlineURL      string
	OutlineAPIKey   string
	OutlinePageSize int
	OutlineTimeout  time.Duration

	HTTPRetryMax               int
	MembershipFetchConcurrency int
	SSHAllowedGroup            string
	SSHPubkeyClaim             string

	DBEnabled  bool
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		ServerPort: getEnv("SERVER_PORT", "8085"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		APIKey:     getEnv("API_KEY", ""),

		PocketIDURL:      strings.TrimRight(getEnv("POCKETID_API_URL", ""), "/"),
		PocketIDAPIKey:   getEnv("POCKETID_API_KEY", ""),
		PocketIDPageSize: getEnvInt("POCKETID_PAGE_SIZE", 50),
		PocketIDTimeout:  getEnvDuration("POCKETID_TIMEOUT", 2*time.Second),

		OutlineURL:      strings.TrimRight(getEnv("OUTLINE_API_URL", ""), "/"),
		OutlineAPIKey:   getEnv("OUTLINE_API_KEY", ""),
		OutlinePageSize: getEnvInt("OUTLINE_PAGE_SIZE", 100),
		OutlineTimeout:  getEnvDuration("OUTLINE_TIMEOUT", 5*time.Second),

		HTTPRetryMax:               getEnvInt("HTTP_RETRY_MAX", 2),
		MembershipFetchConcurrency: getEnvInt("MEMBERSHIP_FETCH_CONCURRENCY", 4),
		SSHAllowedGroup:            getEnv("SSH_ALLOWED_GROUP", ""),
		SSHPubkeyClaim:             getEnv("SSH_PUBKEY_CLAIM", "ssh-pubkey"),

		DBEnabled:  getEnvBool("DB_ENABLED", false),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "group_sync"),
	}, err
}

// Validate проверяет, что заданы все обязательные переменные окружения.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"POCKETID_API_URL", c.PocketIDURL},
		{"POCKETID_API_KEY", c.PocketIDAPIKey},
		{"OUTLINE_API_URL", c.OutlineURL},
		{"OUTLINE_API_KEY", c.OutlineAPIKey},
		{"API_KEY", c.APIKey},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if c.PocketIDPageSize <= 0 || c.OutlinePageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if c.OutlinePageSize > 100 {
		return fmt.Errorf("OUTLINE_PAGE_SIZE must not exceed 100, got %d", c.OutlinePageSize)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
