package services

import (
	"aihub-backend/models"
	"aihub-backend/repository"
	"aihub-backend/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	leadService           *LeadService
	botService            *BotService
	activityService       *ActivityService
	infrastructureService *InfrastructureService
	notifier              *NotificationDispatcher
}

// NewService creates a new service container with all dependencies injected.
// Mail delivery and chat completion are disabled when their credentials are missing.
func NewService(repo *repository.Repository, logger logger.Logger, config *models.Config) *Service {
	activity := NewActivityService(logger)
	notifier := NewNotificationDispatcher(config, NewMailSender(config), logger)
	chat := NewChatService(NewCompleter(config), config, logger)

	if !notifier.Enabled() {
		logger.Warn("SMTP credentials not configured, email notifications are disabled")
	}

	return &Service{
		leadService:           NewLeadService(repo.Lead, notifier, activity, config, logger),
		botService:            NewBotService(repo.Bot, chat, activity, logger),
		activityService:       activity,
		infrastructureService: NewInfrastructureService(config, logger),
		notifier:              notifier,
	}
}

// Start launches background delivery
func (s *Service) Start() {
	s.notifier.Start()
}

// Stop drains pending notifications
func (s *Service) Stop() {
	s.notifier.Stop()
}

// GetLeadService returns the lead service interface
func (s *Service) GetLeadService() LeadServiceInterface {
	return s.leadService
}

// GetBotService returns the bot service interface
func (s *Service) GetBotService() BotServiceInterface {
	return s.botService
}

// GetActivityService returns the activity service interface
func (s *Service) GetActivityService() ActivityServiceInterface {
	return s.activityService
}

// GetInfrastructureService returns the worker status service
func (s *Service) GetInfrastructureService() InfrastructureServiceInterface {
	return s.infrastructureService
}
