package worker

import (
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

const lockTimeout = 10 * time.Minute

// Worker bootstraps DynamoDB tables once and then sends demo reminders on a cron schedule
type Worker struct {
	config        *models.Config
	logger        logger.Logger
	cron          *cron.Cron
	bootstrap     *TableBootstrap
	job           *ReminderJob
	statusManager *StatusManager
	ownerID       string

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewWorker(cfg *models.Config, db dal.DatabaseClientInterface, reminders ReminderSender, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateSchedule(cfg.ReminderSchedule); err != nil {
		return nil, err
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	lockManager := NewLockManager(cfg.WorkerLockPath, lockTimeout, cfg.AppEnv)
	statusManager := NewStatusManager(cfg.WorkerStatusPath)

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		config:        cfg,
		logger:        log.WithFields(map[string]interface{}{"component": "worker", "owner": ownerID}),
		cron:          cron.New(),
		bootstrap:     NewTableBootstrap(cfg, db, log),
		job:           NewReminderJob(reminders, lockManager, statusManager, ownerID, cfg.ExternalCallTimeout*6, log),
		statusManager: statusManager,
		ownerID:       ownerID,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// validateSchedule accepts six-field cron specs with seconds
func validateSchedule(spec string) error {
	if spec == "" {
		return errors.New("reminder schedule cannot be empty")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", spec, err)
	}
	return nil
}

func (w *Worker) logStatusError(err error) {
	if err != nil {
		w.logger.Warnf("Failed to update worker status: %v", err)
	}
}

// Start bootstraps tables and registers the reminder schedule. It does not block.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("worker is already running")
	}

	if err := w.statusManager.Init(w.ownerID, w.config.AppEnv, w.config.ReminderSchedule); err != nil {
		w.logger.Warnf("Failed to initialise worker status: %v", err)
	}

	w.logStatusError(w.statusManager.Update(func(r *models.ExecutionResult) { r.Status = models.StatusCreatingTables }))
	if err := w.bootstrap.Execute(w.ctx, w.statusManager); err != nil {
		w.logStatusError(w.statusManager.MarkFailed(err.Error()))
		return fmt.Errorf("table bootstrap failed: %w", err)
	}

	if err := w.cron.AddFunc(w.config.ReminderSchedule, w.runReminders); err != nil {
		w.logStatusError(w.statusManager.MarkFailed(err.Error()))
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	w.cron.Start()
	w.running = true
	w.logStatusError(w.statusManager.MarkCompleted())

	w.logger.Infof("Worker started with reminder schedule %q", w.config.ReminderSchedule)
	return nil
}

func (w *Worker) runReminders() {
	if w.ctx.Err() != nil {
		return
	}
	if _, err := w.job.Run(w.ctx); err != nil {
		w.logger.Errorf("Reminder job failed: %v", err)
	}
}

// RunNow runs one reminder pass outside the schedule
func (w *Worker) RunNow(ctx context.Context) (int, error) {
	return w.job.Run(ctx)
}

// Stop halts the schedule and cancels in-flight passes
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancel()
	if !w.running {
		return nil
	}
	w.cron.Stop()
	w.running = false

	if err := w.statusManager.Update(func(r *models.ExecutionResult) {
		r.Status = models.StatusStopped
	}); err != nil {
		return fmt.Errorf("failed to record worker stop: %w", err)
	}
	w.logger.Info("Worker stopped")
	return nil
}

func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Status returns the latest in-memory status, or nil before Start
func (w *Worker) Status() *models.ExecutionResult {
	return w.statusManager.Snapshot()
}
