package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// Admin auth
	AuthEnabled       bool          `mapstructure:"auth_enabled"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTExpiresIn      time.Duration `mapstructure:"jwt_expires_in"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Demo booking
	EnforceSlotUniqueness bool `mapstructure:"enforce_slot_uniqueness"`

	// SMTP
	SMTPHost              string `mapstructure:"smtp_host"`
	SMTPPort              int    `mapstructure:"smtp_port"`
	SMTPUser              string `mapstructure:"smtp_user"`
	SMTPPass              string `mapstructure:"smtp_pass"`
	SMTPFrom              string `mapstructure:"smtp_from"`
	NotifyEmail           string `mapstructure:"notify_email"`
	NotificationQueueSize int    `mapstructure:"notification_queue_size"`

	// OpenAI
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIModel   string `mapstructure:"openai_model"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	// Upper bound for every outbound call (DynamoDB, SMTP, completion API)
	ExternalCallTimeout time.Duration `mapstructure:"external_call_timeout"`

	// Worker
	ReminderSchedule string        `mapstructure:"reminder_schedule"`
	ReminderLeadTime time.Duration `mapstructure:"reminder_lead_time"`
	WorkerLockPath   string        `mapstructure:"worker_lock_path"`
	WorkerStatusPath string        `mapstructure:"worker_status_path"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Rate Limiting
	RateLimitRequestsPerMinute int `mapstructure:"rate_limit_requests_per_minute"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	Tables []string `mapstructure:"tables"`
}

// TableName returns the prefixed DynamoDB table name for a collection
func (c *Config) TableName(collection string) string {
	return c.DynamoDBTablePrefix + "_" + collection
}
