package models

import "time"

// WorkerStatus represents the current phase of the background worker
type WorkerStatus string

const (
	StatusIdle             WorkerStatus = "idle"
	StatusInitializing     WorkerStatus = "initializing"
	StatusCreatingTables   WorkerStatus = "creating_tables"
	StatusRetrying         WorkerStatus = "retrying"
	StatusCompleted        WorkerStatus = "completed" // tables ready, reminder schedule running
	StatusFailed           WorkerStatus = "failed"
	StatusSendingReminders WorkerStatus = "sending_reminders"
	StatusStopped          WorkerStatus = "stopped"
)

// LockInfo is the content of the reminder lock file
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

type TableStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // CREATED, EXISTS, FAILED
	CheckedAt time.Time `json:"checked_at"`
}

// ExecutionResult is the persisted worker status read by the health endpoints
type ExecutionResult struct {
	Success     bool          `json:"success"`
	Status      WorkerStatus  `json:"status"`
	OwnerID     string        `json:"owner_id"`
	Environment string        `json:"environment"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	Duration    time.Duration `json:"duration"`

	Tables       []TableStatus `json:"tables"`
	ErrorMessage string        `json:"error_message,omitempty"`
	RetryCount   int           `json:"retry_count"`

	ReminderSchedule  string     `json:"reminder_schedule"`
	LastReminderRun   *time.Time `json:"last_reminder_run,omitempty"`
	LastReminderCount int        `json:"last_reminder_count"`
	RemindersSent     int        `json:"reminders_sent"`

	HealthStatus string    `json:"health_status,omitempty"` // healthy, provisioning, degraded, unhealthy
	UpdatedAt    time.Time `json:"updated_at"`
}
