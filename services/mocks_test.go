package services

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockLeadRepository is a mock implementation of LeadRepositoryInterface
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) CreateLead(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) SaveLead(ctx context.Context, lead *models.Lead, previous *models.Lead) error {
	args := m.Called(ctx, lead, previous)
	return args.Error(0)
}

func (m *MockLeadRepository) ListLeads(ctx context.Context) ([]*models.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListDemoLeadsByDate(ctx context.Context, date time.Time) ([]*models.Lead, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockBotRepository is a mock implementation of BotRepositoryInterface
type MockBotRepository struct {
	mock.Mock
}

func (m *MockBotRepository) CreateBot(ctx context.Context, bot *models.AIBot) error {
	args := m.Called(ctx, bot)
	return args.Error(0)
}

func (m *MockBotRepository) GetBot(ctx context.Context, id string) (*models.AIBot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIBot), args.Error(1)
}

func (m *MockBotRepository) SaveBot(ctx context.Context, bot *models.AIBot) error {
	args := m.Called(ctx, bot)
	return args.Error(0)
}

func (m *MockBotRepository) ListBots(ctx context.Context) ([]*models.AIBot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AIBot), args.Error(1)
}

// MockLogger is a mock implementation of logger.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Debugf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Info(args ...interface{})                  { m.Called(args...) }
func (m *MockLogger) Infof(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockLogger) Warn(args ...interface{})                  { m.Called(args...) }
func (m *MockLogger) Warnf(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockLogger) Error(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Errorf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Fatal(args ...interface{})                 { m.Called(args...) }
func (m *MockLogger) Fatalf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}

func newQuietLogger() *MockLogger {
	l := &MockLogger{}
	for _, method := range []string{"Debugf", "Infof", "Warnf", "Errorf"} {
		l.On(method, mock.Anything, mock.Anything).Return().Maybe()
	}
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		l.On(method, mock.Anything).Return().Maybe()
	}
	return l
}

// recordingNotifier captures enqueued notifications
type recordingNotifier struct {
	mu     sync.Mutex
	reject bool
	sent   []Notification
}

func (n *recordingNotifier) Enqueue(note Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.reject {
		return false
	}
	n.sent = append(n.sent, note)
	return true
}

func (n *recordingNotifier) kinds() []NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NotificationKind, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Kind)
	}
	return out
}

// onDay matches a ListDemoLeadsByDate argument by calendar day
func onDay(day string) interface{} {
	return mock.MatchedBy(func(d time.Time) bool {
		return d.UTC().Format(models.DateLayout) == day
	})
}
