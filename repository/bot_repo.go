package repository

import (
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"fmt"
)

type BotRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewBotRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *BotRepository {
	return &BotRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *BotRepository) botsTable() string {
	return r.config.TableName(collectionBots)
}

func (r *BotRepository) CreateBot(ctx context.Context, bot *models.AIBot) error {
	r.logger.Infof("Creating bot: %s", bot.Name)

	if err := r.db.PutItem(ctx, r.botsTable(), bot); err != nil {
		r.logger.Errorf("Failed to create bot: %v", err)
		return err
	}

	r.logger.Infof("Bot created successfully: %s", bot.ID)
	return nil
}

func (r *BotRepository) GetBot(ctx context.Context, id string) (*models.AIBot, error) {
	if id == "" {
		return nil, ErrBotNotFound
	}

	bot := models.AIBot{}
	if err := r.db.GetItem(ctx, r.botsTable(), "id", id, &bot); err != nil {
		r.logger.Errorf("Failed to get bot %s: %v", id, err)
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}
	if bot.ID == "" {
		return nil, ErrBotNotFound
	}
	return &bot, nil
}

func (r *BotRepository) SaveBot(ctx context.Context, bot *models.AIBot) error {
	if err := r.db.PutItem(ctx, r.botsTable(), bot); err != nil {
		r.logger.Errorf("Failed to save bot %s: %v", bot.ID, err)
		return err
	}
	return nil
}

func (r *BotRepository) ListBots(ctx context.Context) ([]*models.AIBot, error) {
	var bots []*models.AIBot
	if err := r.db.Scan(ctx, r.botsTable(), &bots); err != nil {
		r.logger.Errorf("Failed to scan bots: %v", err)
		return nil, err
	}
	return bots, nil
}
