package repository

import (
	"aihub-backend/models"
	"context"
	"time"
)

// LeadRepositoryInterface defines the contract for lead persistence
type LeadRepositoryInterface interface {
	CreateLead(ctx context.Context, lead *models.Lead) error
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	// SaveLead persists lead; previous is the stored state it was derived from and drives slot claim moves
	SaveLead(ctx context.Context, lead *models.Lead, previous *models.Lead) error
	ListLeads(ctx context.Context) ([]*models.Lead, error)
	ListDemoLeadsByDate(ctx context.Context, date time.Time) ([]*models.Lead, error)
	MarkReminderSent(ctx context.Context, id string, at time.Time) error
}

// BotRepositoryInterface defines the contract for bot persistence
type BotRepositoryInterface interface {
	CreateBot(ctx context.Context, bot *models.AIBot) error
	GetBot(ctx context.Context, id string) (*models.AIBot, error)
	SaveBot(ctx context.Context, bot *models.AIBot) error
	ListBots(ctx context.Context) ([]*models.AIBot, error)
}
