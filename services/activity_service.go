package services

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ActivityCapacity     = 1000
	defaultRecentLimit   = 20
	activityStatsHorizon = 24 * time.Hour
)

// ActivityService is the process-local activity log. It keeps the last ActivityCapacity entries in a
// ring buffer and is safe for concurrent use.
type ActivityService struct {
	mu        sync.Mutex
	entries   []models.Activity
	start     int // index of the oldest entry
	count     int
	now       func() time.Time
	validator *validator.Validate
	logger    logger.Logger
}

func NewActivityService(logger logger.Logger) *ActivityService {
	return &ActivityService{
		entries:   make([]models.Activity, ActivityCapacity),
		now:       time.Now,
		validator: NewValidator(),
		logger:    logger,
	}
}

// Log validates a client-submitted event and appends it
func (s *ActivityService) Log(req *models.LogActivityRequest) error {
	if req == nil {
		return newValidationError("body", "is required")
	}
	req.Event = strings.TrimSpace(req.Event)
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	s.Append(req.Event, req.Payload)
	return nil
}

// Append records an event, evicting the oldest entry when the log is full
func (s *ActivityService) Append(event string, payload map[string]interface{}) {
	entry := models.Activity{
		Event:     event,
		Payload:   payload,
		Timestamp: s.now().UTC(),
	}

	s.mu.Lock()
	if s.count < len(s.entries) {
		s.entries[(s.start+s.count)%len(s.entries)] = entry
		s.count++
	} else {
		s.entries[s.start] = entry
		s.start = (s.start + 1) % len(s.entries)
	}
	s.mu.Unlock()

	s.logger.Debugf("activity: %s", event)
}

// Recent returns up to limit entries, newest first. A non-positive limit means the default of 20.
func (s *ActivityService) Recent(limit int) []models.Activity {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limit > s.count {
		limit = s.count
	}
	out := make([]models.Activity, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.start + s.count - 1 - i) % len(s.entries)
		out = append(out, s.entries[idx])
	}
	return out
}

// Stats counts entries in total, by event name and within the last 24 hours
func (s *ActivityService) Stats() models.ActivityStats {
	cutoff := s.now().UTC().Add(-activityStatsHorizon)

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.ActivityStats{
		Total:   s.count,
		ByEvent: make(map[string]int),
	}
	for i := 0; i < s.count; i++ {
		entry := s.entries[(s.start+i)%len(s.entries)]
		stats.ByEvent[entry.Event]++
		if entry.Timestamp.After(cutoff) {
			stats.Last24h++
		}
	}
	return stats
}
