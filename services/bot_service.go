package services

import (
	"aihub-backend/models"
	"aihub-backend/repository"
	"aihub-backend/utils"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const recentFeedbackInView = 5

type BotService struct {
	repo      repository.BotRepositoryInterface
	chat      ChatResponder
	activity  ActivityServiceInterface
	validator *validator.Validate
	logger    logger.Logger
	now       func() time.Time
}

func NewBotService(repo repository.BotRepositoryInterface, chat ChatResponder, activity ActivityServiceInterface, logger logger.Logger) *BotService {
	return &BotService{
		repo:      repo,
		chat:      chat,
		activity:  activity,
		validator: NewValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *BotService) CreateBot(ctx context.Context, req *models.CreateBotRequest) (*models.AIBot, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	businessID := strings.TrimSpace(req.BusinessID)
	if businessID == "" {
		businessID = models.DefaultBusinessID
	}

	now := s.now().UTC()
	bot := &models.AIBot{
		ID:            utils.GenerateUUID(),
		BusinessID:    businessID,
		Name:          req.Name,
		Description:   strings.TrimSpace(req.Description),
		Status:        models.BotStatusDraft,
		Type:          req.Type,
		Channels:      req.Channels,
		Configuration: defaultConfiguration(),
		TrainingData: models.TrainingData{
			FAQs:            []models.FAQ{},
			CustomResponses: []models.CustomResponse{},
		},
		AIModel: models.AIModelSettings{
			Provider:    models.DefaultBotProvider,
			Model:       models.DefaultBotModel,
			Temperature: models.DefaultBotTemperature,
			MaxTokens:   models.DefaultBotMaxTokens,
		},
		Performance: models.BotPerformance{LastUpdated: now},
		Analytics:   models.BotAnalytics{UserFeedback: []models.UserFeedback{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Configuration != nil {
		bot.Configuration = mergeConfiguration(*req.Configuration)
	}
	if req.TrainingData != nil {
		bot.TrainingData = *req.TrainingData
	}
	if req.AIModel != nil {
		bot.AIModel = mergeModelSettings(*req.AIModel)
	}

	if err := s.repo.CreateBot(ctx, bot); err != nil {
		return nil, s.persistenceError("create bot", err)
	}

	s.activity.Append(models.ActivityBotCreated, map[string]interface{}{
		"botId":    bot.ID,
		"botType":  bot.Type,
		"channels": bot.Channels,
	})
	return bot, nil
}

func (s *BotService) ListBots(ctx context.Context, filter models.BotFilter) ([]*models.AIBot, *models.Pagination, error) {
	q := normalizeListQuery(filter.ListQuery)

	all, err := s.repo.ListBots(ctx)
	if err != nil {
		return nil, nil, s.persistenceError("list bots", err)
	}

	matched := make([]*models.AIBot, 0, len(all))
	for _, bot := range all {
		if filter.Status != "" && bot.Status != filter.Status {
			continue
		}
		if filter.Type != "" && bot.Type != filter.Type {
			continue
		}
		if filter.BusinessID != "" && bot.BusinessID != filter.BusinessID {
			continue
		}
		if q.Search != "" && !containsFold(bot.Name, q.Search) && !containsFold(bot.Description, q.Search) {
			continue
		}
		matched = append(matched, bot)
	}

	sortBots(matched, q.SortBy, q.SortOrder == "desc")
	page, pagination := paginate(matched, q.Page, q.Limit)
	return page, pagination, nil
}

func (s *BotService) GetBot(ctx context.Context, id string) (*models.AIBot, error) {
	bot, err := s.repo.GetBot(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrBotNotFound) {
			return nil, &NotFoundError{Resource: "AI bot", ID: id}
		}
		return nil, s.persistenceError("get bot", err)
	}
	return bot, nil
}

func (s *BotService) UpdateBot(ctx context.Context, id string, req *models.UpdateBotRequest) (*models.AIBot, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	bot, err := s.GetBot(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated []string
	if name := strings.TrimSpace(req.Name); name != "" {
		bot.Name = name
		updated = append(updated, "name")
	}
	if req.Description != nil {
		bot.Description = strings.TrimSpace(*req.Description)
		updated = append(updated, "description")
	}
	if req.Status != "" {
		bot.Status = req.Status
		updated = append(updated, "status")
	}
	if req.Type != "" {
		bot.Type = req.Type
		updated = append(updated, "type")
	}
	if req.Channels != nil {
		bot.Channels = req.Channels
		updated = append(updated, "channels")
	}
	if req.Configuration != nil {
		bot.Configuration = mergeConfiguration(*req.Configuration)
		updated = append(updated, "configuration")
	}
	if req.TrainingData != nil {
		bot.TrainingData = *req.TrainingData
		updated = append(updated, "trainingData")
	}
	if req.AIModel != nil {
		bot.AIModel = mergeModelSettings(*req.AIModel)
		updated = append(updated, "aiModel")
	}
	bot.UpdatedAt = s.now().UTC()

	if err := s.repo.SaveBot(ctx, bot); err != nil {
		return nil, s.persistenceError("update bot", err)
	}

	s.activity.Append(models.ActivityBotUpdated, map[string]interface{}{
		"botId":         bot.ID,
		"updatedFields": updated,
	})
	return bot, nil
}

// TrainBot appends FAQs and custom responses, merges business info and moves the bot to training
func (s *BotService) TrainBot(ctx context.Context, id string, req *models.TrainBotRequest) (*models.TrainResult, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	bot, err := s.GetBot(ctx, id)
	if err != nil {
		return nil, err
	}

	bot.TrainingData.FAQs = append(bot.TrainingData.FAQs, req.FAQs...)
	bot.TrainingData.CustomResponses = append(bot.TrainingData.CustomResponses, req.CustomResponses...)
	if req.BusinessInfo != nil {
		mergeBusinessInfo(&bot.TrainingData.BusinessInfo, *req.BusinessInfo)
	}
	bot.Status = models.BotStatusTraining
	bot.UpdatedAt = s.now().UTC()

	if err := s.repo.SaveBot(ctx, bot); err != nil {
		return nil, s.persistenceError("train bot", err)
	}

	s.activity.Append(models.ActivityBotTrainingStarted, map[string]interface{}{
		"botId":        bot.ID,
		"newFaqs":      len(req.FAQs),
		"newResponses": len(req.CustomResponses),
	})
	return &models.TrainResult{
		ID:             bot.ID,
		Status:         bot.Status,
		TotalFAQs:      len(bot.TrainingData.FAQs),
		TotalResponses: len(bot.TrainingData.CustomResponses),
	}, nil
}

// Chat answers a message from an active bot and folds the exchange into its performance figures
func (s *BotService) Chat(ctx context.Context, id string, req *models.ChatRequest) (*models.ChatResult, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	bot, err := s.GetBot(ctx, id)
	if err != nil {
		return nil, err
	}
	if bot.Status != models.BotStatusActive {
		return nil, &InvalidStateError{Reason: "AI Bot is not active"}
	}

	start := s.now()
	reply := s.chat.Respond(ctx, req.Message, bot, req.Context)
	elapsed := s.now().Sub(start).Milliseconds()

	recordConversation(&bot.Performance, reply.Resolved, elapsed, s.now().UTC())
	if err := s.repo.SaveBot(ctx, bot); err != nil {
		s.logger.Errorf("Failed to record chat performance for bot %s: %v", bot.ID, err)
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = utils.GenerateUUID()
	}
	channel := req.Context["channel"]
	if channel == "" {
		channel = "unknown"
	}

	s.activity.Append(models.ActivityBotChat, map[string]interface{}{
		"botId":         bot.ID,
		"messageLength": len(req.Message),
		"responseTime":  elapsed,
		"resolved":      reply.Resolved,
		"channel":       channel,
	})
	if reply.Suggestions == nil {
		reply.Suggestions = []string{}
	}
	return &models.ChatResult{
		ChatReply:      reply,
		BotID:          bot.ID,
		ConversationID: conversationID,
		ResponseTimeMs: elapsed,
	}, nil
}

func (s *BotService) Performance(ctx context.Context, id string) (*models.BotPerformanceView, error) {
	bot, err := s.GetBot(ctx, id)
	if err != nil {
		return nil, err
	}

	feedback := bot.Analytics.UserFeedback
	recent := feedback
	if len(recent) > recentFeedbackInView {
		recent = recent[len(recent)-recentFeedbackInView:]
	}

	view := &models.BotPerformanceView{
		BotID:          bot.ID,
		Name:           bot.Name,
		Status:         bot.Status,
		Performance:    bot.Performance,
		FeedbackCount:  len(feedback),
		RecentFeedback: append([]models.UserFeedback{}, recent...),
	}
	if total := bot.Performance.TotalConversations; total > 0 {
		view.ResolutionRate = round2(float64(bot.Performance.SuccessfulResolutions) / float64(total) * 100)
	}
	return view, nil
}

// SubmitFeedback records a 1-5 rating and recomputes the average satisfaction
func (s *BotService) SubmitFeedback(ctx context.Context, id string, req *models.FeedbackRequest) (*models.FeedbackResult, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	bot, err := s.GetBot(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	bot.Analytics.UserFeedback = append(bot.Analytics.UserFeedback, models.UserFeedback{
		Rating:         req.Rating,
		Comment:        strings.TrimSpace(req.Comment),
		ConversationID: req.ConversationID,
		CreatedAt:      now,
	})
	sum := 0
	for _, f := range bot.Analytics.UserFeedback {
		sum += f.Rating
	}
	bot.Performance.CustomerSatisfaction = float64(sum) / float64(len(bot.Analytics.UserFeedback))
	bot.Performance.LastUpdated = now
	bot.UpdatedAt = now

	if err := s.repo.SaveBot(ctx, bot); err != nil {
		return nil, s.persistenceError("submit feedback", err)
	}

	s.activity.Append(models.ActivityBotFeedback, map[string]interface{}{
		"botId":      bot.ID,
		"rating":     req.Rating,
		"hasComment": strings.TrimSpace(req.Comment) != "",
	})
	return &models.FeedbackResult{
		AverageRating: round2(bot.Performance.CustomerSatisfaction),
		TotalFeedback: len(bot.Analytics.UserFeedback),
	}, nil
}

// ArchiveBot soft-deletes a bot
func (s *BotService) ArchiveBot(ctx context.Context, id string) error {
	bot, err := s.GetBot(ctx, id)
	if err != nil {
		return err
	}

	bot.Status = models.BotStatusArchived
	bot.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveBot(ctx, bot); err != nil {
		return s.persistenceError("archive bot", err)
	}

	s.activity.Append(models.ActivityBotArchived, map[string]interface{}{
		"botId": bot.ID,
	})
	return nil
}

func (s *BotService) persistenceError(op string, err error) error {
	s.logger.Errorf("Failed to %s: %v", op, err)
	return &PersistenceError{Op: op, Err: err}
}

// recordConversation updates the running totals after one chat exchange
func recordConversation(p *models.BotPerformance, resolved bool, responseMs int64, at time.Time) {
	p.TotalConversations++
	if resolved {
		p.SuccessfulResolutions++
	}
	n := float64(p.TotalConversations)
	p.AverageResponseTime = (p.AverageResponseTime*(n-1) + float64(responseMs)) / n
	p.EscalationRate = round2(float64(p.TotalConversations-p.SuccessfulResolutions) / n * 100)
	p.LastUpdated = at
}

func defaultConfiguration() models.BotConfiguration {
	return models.BotConfiguration{
		Language: models.DefaultBotLanguage,
		Timezone: models.DefaultTimezone,
		BusinessHours: models.BusinessHours{
			Start:    models.TimeSlots[0],
			End:      models.TimeSlots[len(models.TimeSlots)-1],
			Timezone: models.DefaultTimezone,
		},
	}
}

func mergeConfiguration(in models.BotConfiguration) models.BotConfiguration {
	def := defaultConfiguration()
	if in.Language == "" {
		in.Language = def.Language
	}
	if in.Timezone == "" {
		in.Timezone = def.Timezone
	}
	if in.BusinessHours == (models.BusinessHours{}) {
		in.BusinessHours = def.BusinessHours
	}
	return in
}

func mergeModelSettings(in models.AIModelSettings) models.AIModelSettings {
	if in.Provider == "" {
		in.Provider = models.DefaultBotProvider
	}
	if in.Model == "" {
		in.Model = models.DefaultBotModel
	}
	if in.MaxTokens == 0 {
		in.MaxTokens = models.DefaultBotMaxTokens
	}
	return in
}

func mergeBusinessInfo(dst *models.BotBusinessInfo, src models.BotBusinessInfo) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Services != nil {
		dst.Services = src.Services
	}
	if src.Hours != "" {
		dst.Hours = src.Hours
	}
	if src.Location != "" {
		dst.Location = src.Location
	}
	if src.Contact != "" {
		dst.Contact = src.Contact
	}
}

func sortBots(bots []*models.AIBot, sortBy string, desc bool) {
	less := func(a, b *models.AIBot) bool {
		switch sortBy {
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "status":
			return a.Status < b.Status
		case "type":
			return a.Type < b.Type
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(bots, func(i, j int) bool {
		if desc {
			return less(bots[j], bots[i])
		}
		return less(bots[i], bots[j])
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
