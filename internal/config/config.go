package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kelsos/makerspace-demo/internal/models"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Fixture settings
	DataDir      string `mapstructure:"data_dir"`
	ResponsesDir string `mapstructure:"responses_dir"`

	// Session settings
	SessionName   string `mapstructure:"session_name"`
	SessionSecret string `mapstructure:"session_secret"`

	// CORS settings, "*" allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Tenant is the single user the directory serves
	Tenant models.User `mapstructure:"tenant"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Port:            4000,
		ShutdownTimeout: 5 * time.Second,
		DataDir:         "./data",
		ResponsesDir:    "./responses",
		SessionName:     "session",
		SessionSecret:   "TEST_KEY",
		AllowedOrigins:  []string{"*"},
		Tenant:          models.DefaultTenant(),
	}
}

// LoadFromFile overlays values from a YAML config file
func (c *Config) LoadFromFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if host := os.Getenv("MAKERSPACE_HOST"); host != "" {
		c.Host = host
	}

	if port := os.Getenv("MAKERSPACE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}

	if timeout := os.Getenv("MAKERSPACE_SHUTDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.ShutdownTimeout = d
		}
	}

	if dataDir := os.Getenv("MAKERSPACE_DATA_DIR"); dataDir != "" {
		c.DataDir = dataDir
	}

	if responsesDir := os.Getenv("MAKERSPACE_RESPONSES_DIR"); responsesDir != "" {
		c.ResponsesDir = responsesDir
	}

	if name := os.Getenv("MAKERSPACE_SESSION_NAME"); name != "" {
		c.SessionName = name
	}

	if secret := os.Getenv("MAKERSPACE_SESSION_SECRET"); secret != "" {
		c.SessionSecret = secret
	}

	if origins := os.Getenv("MAKERSPACE_ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	if firstName := os.Getenv("MAKERSPACE_TENANT_FIRST_NAME"); firstName != "" {
		c.Tenant.FirstName = firstName
	}

	if lastName := os.Getenv("MAKERSPACE_TENANT_LAST_NAME"); lastName != "" {
		c.Tenant.LastName = lastName
	}

	if userID := os.Getenv("MAKERSPACE_TENANT_USER_ID"); userID != "" {
		c.Tenant.UserID = userID
	}
}

// Address returns the listen address for the HTTP server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BaseURL returns the URL a local client reaches the server on
func (c *Config) BaseURL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Port)
}

// AllowsAllOrigins reports whether CORS is open to every origin
func (c *Config) AllowsAllOrigins() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.SessionName == "" {
		return fmt.Errorf("session name cannot be empty")
	}

	if c.SessionSecret == "" {
		return fmt.Errorf("session secret cannot be empty")
	}

	if c.Tenant.UserID == "" {
		return fmt.Errorf("tenant user_id cannot be empty")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got: %s", c.ShutdownTimeout)
	}

	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
