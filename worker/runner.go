package worker

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"time"
)

// ReminderSender sends reminders for demos that start soon and returns how many were queued
type ReminderSender interface {
	SendDueReminders(ctx context.Context) (int, error)
}

// ReminderJob runs one reminder pass under the file lock
type ReminderJob struct {
	reminders     ReminderSender
	lockManager   *LockManager
	statusManager *StatusManager
	ownerID       string
	timeout       time.Duration
	logger        logger.Logger
}

func NewReminderJob(reminders ReminderSender, lm *LockManager, sm *StatusManager, ownerID string, timeout time.Duration, log logger.Logger) *ReminderJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &ReminderJob{
		reminders:     reminders,
		lockManager:   lm,
		statusManager: sm,
		ownerID:       ownerID,
		timeout:       timeout,
		logger:        log,
	}
}

// Run sends due reminders. A lock held by another process skips the pass and is not an error.
func (j *ReminderJob) Run(ctx context.Context) (int, error) {
	lock, err := j.lockManager.AcquireLock(j.ownerID)
	if err != nil {
		if errors.Is(err, ErrLockHeld) {
			j.logger.Debugf("Skipping reminder pass: %v", err)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to acquire reminder lock: %w", err)
	}
	defer func() {
		if err := j.lockManager.ReleaseLock(lock); err != nil {
			j.logger.Warnf("Failed to release reminder lock: %v", err)
		}
	}()

	if err := j.statusManager.Update(func(r *models.ExecutionResult) {
		r.Status = models.StatusSendingReminders
	}); err != nil {
		j.logger.Warnf("Failed to update worker status: %v", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	sent, runErr := j.reminders.SendDueReminders(runCtx)

	if err := j.statusManager.Update(func(r *models.ExecutionResult) {
		now := time.Now().UTC()
		r.Status = models.StatusCompleted
		r.LastReminderRun = &now
		r.LastReminderCount = sent
		r.RemindersSent += sent
		if runErr != nil {
			r.ErrorMessage = runErr.Error()
			r.HealthStatus = "degraded"
		} else {
			r.ErrorMessage = ""
			r.HealthStatus = "healthy"
		}
	}); err != nil {
		j.logger.Warnf("Failed to update worker status: %v", err)
	}

	if runErr != nil {
		return sent, fmt.Errorf("reminder pass failed: %w", runErr)
	}
	if sent > 0 {
		j.logger.Infof("Queued %d demo reminders", sent)
	}
	return sent, nil
}
