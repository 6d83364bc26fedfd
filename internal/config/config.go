// Package config provides configuration for the relay.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the relay configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Uploaded file storage
	UploadDir string

	// Completion / moderation provider
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAITimeout time.Duration

	// Foundry agent path
	AzureTenantID        string
	AzureClientID        string
	AzureClientSecret    string
	FoundryAgentEndpoint string
	EntraTokenURL        string

	// Remote analysis service
	VMAPIURL string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:             getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:          getEnv("DATABASE_URL", "file:relay.db?cache=shared&mode=rwc"),
		UploadDir:            getEnv("UPLOAD_DIR", "./uploads"),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAITimeout:        time.Duration(getEnvInt("OPENAI_TIMEOUT_MS", 120000)) * time.Millisecond,
		AzureTenantID:        getEnv("AZURE_TENANT_ID", ""),
		AzureClientID:        getEnv("AZURE_CLIENT_ID", ""),
		AzureClientSecret:    getEnv("AZURE_CLIENT_SECRET", ""),
		FoundryAgentEndpoint: getEnv("FOUNDRY_AGENT_ENDPOINT", ""),
		EntraTokenURL:        getEnv("ENTRA_TOKEN_URL", "https://login.microsoftonline.com"),
		VMAPIURL:             getEnv("VM_API_URL", ""),
	}
	return cfg
}

// AgentConfigured reports whether every setting the agent path needs is present.
func (c *Config) AgentConfigured() bool {
	return c.AzureTenantID != "" && c.AzureClientID != "" && c.AzureClientSecret != "" && c.FoundryAgentEndpoint != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
