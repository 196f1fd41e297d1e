package worker

import (
	"aihub-backend/models"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StatusManager persists the worker's ExecutionResult as a JSON file so other processes can report it
type StatusManager struct {
	StatusFilePath string

	mu      sync.Mutex
	current *models.ExecutionResult
}

func NewStatusManager(statusPath string) *StatusManager {
	return &StatusManager{StatusFilePath: statusPath}
}

// Init resets the status for a fresh worker run
func (sm *StatusManager) Init(ownerID, env, schedule string) error {
	now := time.Now().UTC()
	return sm.save(&models.ExecutionResult{
		Status:           models.StatusInitializing,
		OwnerID:          ownerID,
		Environment:      env,
		StartTime:        now,
		Tables:           []models.TableStatus{},
		ReminderSchedule: schedule,
		HealthStatus:     "provisioning",
	})
}

// Update applies fn to the current status and writes the result
func (sm *StatusManager) Update(fn func(*models.ExecutionResult)) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.current == nil {
		loaded, err := LoadStatus(sm.StatusFilePath)
		if err != nil {
			loaded = &models.ExecutionResult{StartTime: time.Now().UTC(), Tables: []models.TableStatus{}}
		}
		sm.current = loaded
	}
	fn(sm.current)
	return sm.write(sm.current)
}

// Snapshot returns a copy of the in-memory status
func (sm *StatusManager) Snapshot() *models.ExecutionResult {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.current == nil {
		return nil
	}
	c := *sm.current
	c.Tables = append([]models.TableStatus(nil), sm.current.Tables...)
	return &c
}

func (sm *StatusManager) MarkCompleted() error {
	return sm.Update(func(r *models.ExecutionResult) {
		now := time.Now().UTC()
		r.Success = true
		r.Status = models.StatusCompleted
		r.ErrorMessage = ""
		r.EndTime = &now
		r.Duration = now.Sub(r.StartTime)
		r.HealthStatus = "healthy"
	})
}

func (sm *StatusManager) MarkFailed(errorMsg string) error {
	return sm.Update(func(r *models.ExecutionResult) {
		now := time.Now().UTC()
		r.Success = false
		r.Status = models.StatusFailed
		r.ErrorMessage = errorMsg
		r.EndTime = &now
		r.Duration = now.Sub(r.StartTime)
		r.HealthStatus = "unhealthy"
	})
}

// RecordTable records the outcome for one table, replacing an earlier entry
func (sm *StatusManager) RecordTable(name, state string) error {
	return sm.Update(func(r *models.ExecutionResult) {
		entry := models.TableStatus{Name: name, Status: state, CheckedAt: time.Now().UTC()}
		for i := range r.Tables {
			if r.Tables[i].Name == name {
				r.Tables[i] = entry
				return
			}
		}
		r.Tables = append(r.Tables, entry)
	})
}

func (sm *StatusManager) save(result *models.ExecutionResult) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = result
	return sm.write(result)
}

func (sm *StatusManager) write(result *models.ExecutionResult) error {
	if err := os.MkdirAll(filepath.Dir(sm.StatusFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}
	result.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	tempFile := sm.StatusFilePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp status file: %w", err)
	}
	if err := os.Rename(tempFile, sm.StatusFilePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename status file: %w", err)
	}
	return nil
}

// LoadStatus reads a status file written by a StatusManager
func LoadStatus(path string) (*models.ExecutionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}
	return &result, nil
}
