package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string
	APIKey   string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Geocoding provider (Nominatim-compatible)
	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	GeocodeCacheTTL   time.Duration

	// Fallback center when geocoding is unavailable or no address is given
	DefaultLatitude  float64
	DefaultLongitude float64

	// Search defaults
	DefaultRadiusKm     float64
	DefaultWindow       time.Duration
	AutocompleteCountry string

	// Fiscal code validation service
	FiscalCodeBaseURL string
	FiscalCodeTimeout time.Duration

	// OTP store
	OTPTTL time.Duration

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIKey:   getEnv("API_KEY", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		GeocoderBaseURL:   getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "MedicalBooking/1.0"),
		GeocoderTimeout:   getEnvAsDuration("GEOCODER_TIMEOUT", 5*time.Second),
		GeocodeCacheTTL:   getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),

		DefaultLatitude:  getEnvAsFloat("DEFAULT_LATITUDE", 46.0697),
		DefaultLongitude: getEnvAsFloat("DEFAULT_LONGITUDE", 11.1211),

		DefaultRadiusKm:     getEnvAsFloat("DEFAULT_RADIUS_KM", 50),
		DefaultWindow:       getEnvAsDuration("DEFAULT_SEARCH_WINDOW", 14*24*time.Hour),
		AutocompleteCountry: getEnv("AUTOCOMPLETE_COUNTRY", "it"),

		FiscalCodeBaseURL: getEnv("FISCAL_CODE_BASE_URL", ""),
		FiscalCodeTimeout: getEnvAsDuration("FISCAL_CODE_TIMEOUT", 5*time.Second),

		OTPTTL: getEnvAsDuration("OTP_TTL", 5*time.Minute),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Medical Booking"),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
