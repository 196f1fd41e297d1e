package controller

import (
	"aihub-backend/models"
	"aihub-backend/repository"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockControllerLogger is a mock implementation of logger.Logger
type MockControllerLogger struct {
	mock.Mock
}

func (m *MockControllerLogger) Debug(args ...interface{})                 { m.Called(args...) }
func (m *MockControllerLogger) Debugf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockControllerLogger) Info(args ...interface{})                  { m.Called(args...) }
func (m *MockControllerLogger) Infof(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockControllerLogger) Warn(args ...interface{})                  { m.Called(args...) }
func (m *MockControllerLogger) Warnf(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockControllerLogger) Error(args ...interface{})                 { m.Called(args...) }
func (m *MockControllerLogger) Errorf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockControllerLogger) Fatal(args ...interface{})                 { m.Called(args...) }
func (m *MockControllerLogger) Fatalf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockControllerLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}

func newQuietLogger() *MockControllerLogger {
	l := &MockControllerLogger{}
	for _, method := range []string{"Debugf", "Infof", "Warnf", "Errorf"} {
		l.On(method, mock.Anything, mock.Anything).Return().Maybe()
	}
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		l.On(method, mock.Anything).Return().Maybe()
	}
	return l
}

// MockInfrastructureService implements InfrastructureServiceInterface for testing
type MockInfrastructureService struct {
	mock.Mock
}

func (m *MockInfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExecutionResult), args.Error(1)
}

func (m *MockInfrastructureService) IsWorkerHealthy() (bool, string, error) {
	args := m.Called()
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockInfrastructureService) RunReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockInfrastructureService) AttachRunner(r services.ReminderRunner) {
	m.Called(r)
}

// memLeadRepository keeps leads in memory and enforces one active lead per demo slot
type memLeadRepository struct {
	mu    sync.Mutex
	leads map[string]models.Lead
}

func newMemLeadRepository() *memLeadRepository {
	return &memLeadRepository{leads: map[string]models.Lead{}}
}

func (r *memLeadRepository) slotTaken(lead *models.Lead) bool {
	key := lead.SlotKey()
	if key == "" || !lead.Status.IsActive() {
		return false
	}
	for id, other := range r.leads {
		if id != lead.ID && other.Status.IsActive() && other.SlotKey() == key {
			return true
		}
	}
	return false
}

func (r *memLeadRepository) CreateLead(ctx context.Context, lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(lead) {
		return repository.ErrSlotTaken
	}
	r.leads[lead.ID] = *lead
	return nil
}

func (r *memLeadRepository) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, repository.ErrLeadNotFound
	}
	return &lead, nil
}

func (r *memLeadRepository) SaveLead(ctx context.Context, lead *models.Lead, previous *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(lead) {
		return repository.ErrSlotTaken
	}
	r.leads[lead.ID] = *lead
	return nil
}

func (r *memLeadRepository) ListLeads(ctx context.Context) ([]*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		lead := lead
		out = append(out, &lead)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLeadRepository) ListDemoLeadsByDate(ctx context.Context, date time.Time) ([]*models.Lead, error) {
	all, _ := r.ListLeads(ctx)
	day := date.UTC().Format(models.DateLayout)
	out := make([]*models.Lead, 0)
	for _, lead := range all {
		if lead.IsDemo() && lead.DemoDetails.PreferredDate.UTC().Format(models.DateLayout) == day {
			out = append(out, lead)
		}
	}
	return out, nil
}

func (r *memLeadRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return repository.ErrLeadNotFound
	}
	lead.ReminderSentAt = &at
	r.leads[id] = lead
	return nil
}

type memBotRepository struct {
	mu   sync.Mutex
	bots map[string]models.AIBot
}

func newMemBotRepository() *memBotRepository {
	return &memBotRepository{bots: map[string]models.AIBot{}}
}

func (r *memBotRepository) CreateBot(ctx context.Context, bot *models.AIBot) error {
	return r.SaveBot(ctx, bot)
}

func (r *memBotRepository) GetBot(ctx context.Context, id string) (*models.AIBot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bot, ok := r.bots[id]
	if !ok {
		return nil, repository.ErrBotNotFound
	}
	return &bot, nil
}

func (r *memBotRepository) SaveBot(ctx context.Context, bot *models.AIBot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bots[bot.ID] = *bot
	return nil
}

func (r *memBotRepository) ListBots(ctx context.Context) ([]*models.AIBot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AIBot, 0, len(r.bots))
	for _, bot := range r.bots {
		bot := bot
		out = append(out, &bot)
	}
	return out, nil
}

type discardNotifier struct{}

func (discardNotifier) Enqueue(services.Notification) bool { return true }

// testContainer wires the real lead, bot and activity services over in-memory repositories
type testContainer struct {
	lead     services.LeadServiceInterface
	bot      services.BotServiceInterface
	activity services.ActivityServiceInterface
	infra    services.InfrastructureServiceInterface
}

func newTestContainer(cfg *models.Config, log logger.Logger, infra services.InfrastructureServiceInterface) *testContainer {
	activity := services.NewActivityService(log)
	chat := services.NewChatService(nil, cfg, log)
	return &testContainer{
		lead:     services.NewLeadService(newMemLeadRepository(), discardNotifier{}, activity, cfg, log),
		bot:      services.NewBotService(newMemBotRepository(), chat, activity, log),
		activity: activity,
		infra:    infra,
	}
}

func (c *testContainer) GetLeadService() services.LeadServiceInterface {
	return c.lead
}

func (c *testContainer) GetBotService() services.BotServiceInterface {
	return c.bot
}

func (c *testContainer) GetActivityService() services.ActivityServiceInterface {
	return c.activity
}

func (c *testContainer) GetInfrastructureService() services.InfrastructureServiceInterface {
	return c.infra
}
