package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Webhooks
	Webhook WebhookConfig
	GitHub  GitHubConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port           int
	Mode           string
	TrustedProxies []string // proxies allowed to set X-Forwarded-For; empty trusts none
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type WebhookConfig struct {
	Secret           string
	RequireSignature bool
	DedupeDeliveries bool
	Capacity         int
	MaxPayloadBytes  int64
	AllowedIPs       []string
	RateLimitPerMin  int
	AdminToken       string
	PublicURL        string // externally reachable base URL, used when logging the payload URL
	StreamBuffer     int
}

type GitHubConfig struct {
	Username string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.TrustedProxies = splitList(viper.Get("http_server.trusted_proxies"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Webhooks
	cfg.Webhook.Secret = expandEnvVar(viper.GetString("webhook.secret"))
	cfg.Webhook.RequireSignature = viper.GetBool("webhook.require_signature")
	cfg.Webhook.DedupeDeliveries = viper.GetBool("webhook.dedupe_deliveries")
	cfg.Webhook.Capacity = viper.GetInt("webhook.capacity")
	cfg.Webhook.MaxPayloadBytes = viper.GetInt64("webhook.max_payload_bytes")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AdminToken = expandEnvVar(viper.GetString("webhook.admin_token"))
	cfg.Webhook.PublicURL = strings.TrimRight(viper.GetString("webhook.public_url"), "/")
	cfg.Webhook.StreamBuffer = viper.GetInt("webhook.stream_buffer")
	cfg.Webhook.AllowedIPs = splitList(viper.Get("webhook.allowed_ips"))

	cfg.GitHub.Username = viper.GetString("github.username")

	if err := validateWebhookConfig(&cfg.Webhook); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("webhook.require_signature", false)
	viper.SetDefault("webhook.dedupe_deliveries", true)
	viper.SetDefault("webhook.capacity", 200)
	viper.SetDefault("webhook.max_payload_bytes", 25<<20) // GitHub caps deliveries at 25 MB
	viper.SetDefault("webhook.rate_limit_per_min", 0)
	viper.SetDefault("webhook.stream_buffer", 64)
}

// validateWebhookConfig validates the webhook configuration
func validateWebhookConfig(cfg *WebhookConfig) error {
	if cfg.Capacity < 1 {
		return fmt.Errorf("webhook.capacity must be at least 1, got %d", cfg.Capacity)
	}
	if cfg.MaxPayloadBytes < 1 {
		return fmt.Errorf("webhook.max_payload_bytes must be positive, got %d", cfg.MaxPayloadBytes)
	}
	if cfg.RateLimitPerMin < 0 {
		return fmt.Errorf("webhook.rate_limit_per_min must not be negative, got %d", cfg.RateLimitPerMin)
	}
	for _, entry := range cfg.AllowedIPs {
		if !validIPEntry(entry) {
			return fmt.Errorf("webhook.allowed_ips: %q is not an IP address or CIDR range", entry)
		}
	}
	return nil
}

func validIPEntry(entry string) bool {
	if strings.Contains(entry, "/") {
		_, _, err := net.ParseCIDR(entry)
		return err == nil
	}
	return net.ParseIP(entry) != nil
}

// splitList accepts either a YAML list or a comma separated string,
// since env overrides only carry strings.
func splitList(raw any) []string {
	var items []string
	switch v := raw.(type) {
	case string:
		items = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	case []string:
		items = v
	}

	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
