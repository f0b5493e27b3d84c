package config

import (
	"os"
	"strconv"

	"pdf-processing-service/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	OCRAPIURL          string
	DefaultLongestSide int
	MaxFileSize        int64
	RequestTimeout     int
	LogLevel           string
	LogFormat          string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8000")),
		OCRAPIURL:          getEnvOrDefault("OCR_API_URL", "http://192.168.48.236:8080/layout-parsing"),
		DefaultLongestSide: getEnvIntOrDefault("DEFAULT_LONGEST_SIDE", 1280),
		MaxFileSize:        getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		RequestTimeout:     getEnvIntOrDefault("REQUEST_TIMEOUT", 30),           // seconds
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetOCRAPIURL returns the default layout-parsing service endpoint
func (c *AppConfig) GetOCRAPIURL() string {
	return c.OCRAPIURL
}

// GetDefaultLongestSide returns the default longest-side pixel size used
// when a request does not override it
func (c *AppConfig) GetDefaultLongestSide() int {
	return c.DefaultLongestSide
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetRequestTimeout returns the remote call timeout in seconds
func (c *AppConfig) GetRequestTimeout() int {
	return c.RequestTimeout
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the logging output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
