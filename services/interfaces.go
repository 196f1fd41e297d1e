package services

import (
	"aihub-backend/models"
	"context"
	"time"
)

// LeadServiceInterface defines the contract for lead lifecycle operations
type LeadServiceInterface interface {
	CreateContactLead(ctx context.Context, req *models.CreateContactRequest, rc models.RequestContext) (*models.ContactResult, error)
	BookDemo(ctx context.Context, req *models.BookDemoRequest, rc models.RequestContext) (*models.BookingResult, error)
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	ListLeads(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, *models.Pagination, error)
	UpdateLead(ctx context.Context, id string, req *models.UpdateLeadRequest) (*models.Lead, error)
	RescheduleDemo(ctx context.Context, id string, req *models.RescheduleRequest) (*models.RescheduleResult, error)
	ArchiveLead(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*models.LeadStats, error)
	Availability(ctx context.Context, date string) (*models.Availability, error)
	AvailableSlots(ctx context.Context, date time.Time) ([]string, error)
	DemoSlots(ctx context.Context, filter models.DemoSlotFilter) ([]*models.Lead, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	SendDueReminders(ctx context.Context) (int, error)
}

// BotServiceInterface defines the contract for AI bot management and chat
type BotServiceInterface interface {
	CreateBot(ctx context.Context, req *models.CreateBotRequest) (*models.AIBot, error)
	ListBots(ctx context.Context, filter models.BotFilter) ([]*models.AIBot, *models.Pagination, error)
	GetBot(ctx context.Context, id string) (*models.AIBot, error)
	UpdateBot(ctx context.Context, id string, req *models.UpdateBotRequest) (*models.AIBot, error)
	TrainBot(ctx context.Context, id string, req *models.TrainBotRequest) (*models.TrainResult, error)
	Chat(ctx context.Context, id string, req *models.ChatRequest) (*models.ChatResult, error)
	Performance(ctx context.Context, id string) (*models.BotPerformanceView, error)
	SubmitFeedback(ctx context.Context, id string, req *models.FeedbackRequest) (*models.FeedbackResult, error)
	ArchiveBot(ctx context.Context, id string) error
}

// ActivityServiceInterface is the bounded in-process activity log
type ActivityServiceInterface interface {
	Append(event string, payload map[string]interface{})
	Log(req *models.LogActivityRequest) error
	Recent(limit int) []models.Activity
	Stats() models.ActivityStats
}

// InfrastructureServiceInterface exposes background worker health
type InfrastructureServiceInterface interface {
	GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error)
	IsWorkerHealthy() (bool, string, error)
	RunReminders(ctx context.Context) (int, error)
	AttachRunner(r ReminderRunner)
}

// Notifier accepts best-effort notification jobs
type Notifier interface {
	Enqueue(n Notification) bool
}

// ChatResponder produces bot replies
type ChatResponder interface {
	Respond(ctx context.Context, message string, bot *models.AIBot, convContext map[string]string) models.ChatReply
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetLeadService() LeadServiceInterface
	GetBotService() BotServiceInterface
	GetActivityService() ActivityServiceInterface
	GetInfrastructureService() InfrastructureServiceInterface
}
