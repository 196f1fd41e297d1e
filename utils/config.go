package utils

import (
	"aihub-backend/models"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-this-admin-jwt-secret"

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Config file not found, continue with defaults and env vars
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	flattenNestedConfig(v)

	return loadFrom(v)
}

func loadFrom(v *viper.Viper) (*models.Config, error) {
	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "AI Hub Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8081")

	// Admin auth defaults
	v.SetDefault("auth_enabled", false)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_expires_in", 12*time.Hour)

	// AWS defaults
	v.SetDefault("aws_region", "ap-south-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	v.SetDefault("enforce_slot_uniqueness", true)

	// SMTP defaults
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("smtp_from", "")
	v.SetDefault("notify_email", "")
	v.SetDefault("notification_queue_size", 100)

	// OpenAI defaults
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", models.DefaultBotModel)
	v.SetDefault("openai_base_url", "")

	v.SetDefault("external_call_timeout", 10*time.Second)

	// Worker defaults
	v.SetDefault("reminder_schedule", "0 */15 * * * *")
	v.SetDefault("reminder_lead_time", time.Hour)
	v.SetDefault("worker_lock_path", "/tmp/aihub-reminders.lock")
	v.SetDefault("worker_status_path", "/tmp/aihub-worker-status.json")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Rate limiting defaults
	v.SetDefault("rate_limit_requests_per_minute", 100)

	// Base Path default
	v.SetDefault("basePath", "/api")

	v.SetDefault("tables", []string{"leads", "bots", "slots"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.AuthEnabled {
		if c.AppEnv == "production" && c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production environment")
		}
		if c.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set when auth is enabled")
		}
	}

	if c.ExternalCallTimeout <= 0 {
		return fmt.Errorf("external_call_timeout must be positive")
	}

	if c.NotificationQueueSize <= 0 {
		return fmt.Errorf("notification_queue_size must be positive")
	}

	if c.SMTPUser != "" && c.NotifyEmail == "" {
		fmt.Println("No notify_email configured, contact notifications go to the SMTP user")
	}

	// In production, we should have AWS credentials set
	if c.AppEnv == "production" && c.AWSAccessKeyID == "" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// nestedKeys maps "section.key" entries of config.json onto flat config keys
var nestedKeys = map[string]string{
	"app.name":                       "app_name",
	"app.version":                    "app_version",
	"app.env":                        "app_env",
	"app.host":                       "app_host",
	"app.port":                       "app_port",
	"auth.enabled":                   "auth_enabled",
	"auth.admin_username":            "admin_username",
	"auth.admin_password_hash":       "admin_password_hash",
	"auth.jwt_secret":                "jwt_secret",
	"auth.jwt_expires_in":            "jwt_expires_in",
	"aws.region":                     "aws_region",
	"aws.access_key_id":              "aws_access_key_id",
	"aws.secret_access_key":          "aws_secret_access_key",
	"aws.dynamodb_endpoint":          "dynamodb_endpoint",
	"aws.dynamodb_table_prefix":      "dynamodb_table_prefix",
	"aws.enforce_slot_uniqueness":    "enforce_slot_uniqueness",
	"smtp.host":                      "smtp_host",
	"smtp.port":                      "smtp_port",
	"smtp.user":                      "smtp_user",
	"smtp.pass":                      "smtp_pass",
	"smtp.from":                      "smtp_from",
	"smtp.notify_email":              "notify_email",
	"smtp.queue_size":                "notification_queue_size",
	"openai.api_key":                 "openai_api_key",
	"openai.model":                   "openai_model",
	"openai.base_url":                "openai_base_url",
	"openai.timeout":                 "external_call_timeout",
	"worker.reminder_schedule":       "reminder_schedule",
	"worker.reminder_lead_time":      "reminder_lead_time",
	"worker.lock_path":               "worker_lock_path",
	"worker.status_path":             "worker_status_path",
	"logging.level":                  "log_level",
	"logging.format":                 "log_format",
	"cors.origins":                   "cors_origins",
	"rate_limit.requests_per_minute": "rate_limit_requests_per_minute",
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	for nested, flat := range nestedKeys {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}
}
