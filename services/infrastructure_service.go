package services

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// staleReminderRun marks the worker degraded when no reminder pass has run for this long
const staleReminderRun = 2 * time.Hour

// ErrWorkerUnavailable is returned when no in-process worker is attached
var ErrWorkerUnavailable = errors.New("reminder worker is not running in this process")

// ReminderRunner triggers one reminder pass outside the cron schedule
type ReminderRunner interface {
	RunNow(ctx context.Context) (int, error)
}

// InfrastructureService reports the background worker's status file and can trigger a reminder pass
type InfrastructureService struct {
	config *models.Config
	logger logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	runner ReminderRunner
}

func NewInfrastructureService(cfg *models.Config, logger logger.Logger) *InfrastructureService {
	return &InfrastructureService{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// AttachRunner connects the in-process worker once it exists
func (s *InfrastructureService) AttachRunner(r ReminderRunner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runner = r
}

func (s *InfrastructureService) readStatus() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(s.config.WorkerStatusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read worker status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal worker status: %w", err)
	}
	return &result, nil
}

// GetWorkerStatus returns the persisted worker status with a freshly computed health indicator
func (s *InfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	s.logger.Debug("Getting worker status")

	result, err := s.readStatus()
	if err != nil {
		return nil, err
	}
	result.HealthStatus = s.healthOf(result)
	return result, nil
}

func (s *InfrastructureService) healthOf(r *models.ExecutionResult) string {
	switch r.Status {
	case models.StatusCompleted, models.StatusSendingReminders:
		if r.ErrorMessage != "" {
			return "degraded"
		}
		if r.LastReminderRun != nil && s.now().Sub(*r.LastReminderRun) > staleReminderRun {
			return "degraded"
		}
		return "healthy"
	case models.StatusInitializing, models.StatusCreatingTables:
		return "provisioning"
	case models.StatusRetrying:
		return "degraded"
	case models.StatusFailed:
		return "unhealthy"
	case models.StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// IsWorkerHealthy reports worker health with a human readable reason
func (s *InfrastructureService) IsWorkerHealthy() (bool, string, error) {
	status, err := s.readStatus()
	if err != nil {
		return false, "Cannot read worker status", err
	}

	switch s.healthOf(status) {
	case "healthy":
		return true, "Worker is running normally", nil
	case "provisioning":
		return true, "Worker is preparing tables", nil
	case "degraded":
		if status.ErrorMessage != "" {
			return false, fmt.Sprintf("Last reminder pass failed: %s", status.ErrorMessage), nil
		}
		if status.Status == models.StatusRetrying {
			return false, "Worker is retrying table creation", nil
		}
		return false, "No reminder pass has run recently", nil
	case "unhealthy":
		return false, fmt.Sprintf("Worker failed: %s", status.ErrorMessage), nil
	case "stopped":
		return false, "Worker is stopped", nil
	default:
		return false, "Worker status unknown", nil
	}
}

// RunReminders runs one reminder pass through the attached worker
func (s *InfrastructureService) RunReminders(ctx context.Context) (int, error) {
	s.mu.RLock()
	runner := s.runner
	s.mu.RUnlock()

	if runner == nil {
		return 0, ErrWorkerUnavailable
	}
	s.logger.Info("Running reminder pass on demand")
	return runner.RunNow(ctx)
}
