package repository

import (
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"errors"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrBotNotFound  = errors.New("bot not found")
	// ErrSlotTaken is returned when another active lead already claimed the demo slot
	ErrSlotTaken = errors.New("demo slot already taken")
)

const (
	collectionLeads = "leads"
	collectionBots  = "bots"
	collectionSlots = "slots"

	slotDateIndex = "slotDate-index"
)

// Repository groups the collection repositories built over one database client
type Repository struct {
	Lead *LeadRepository
	Bot  *BotRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Lead: NewLeadRepository(db, cfg, log),
		Bot:  NewBotRepository(db, cfg, log),
	}
}
