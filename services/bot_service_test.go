package services

import (
	"aihub-backend/models"
	"aihub-backend/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type stubResponder struct {
	reply models.ChatReply
}

func (s stubResponder) Respond(ctx context.Context, message string, bot *models.AIBot, convContext map[string]string) models.ChatReply {
	return s.reply
}

type BotServiceTestSuite struct {
	suite.Suite
	repo     *MockBotRepository
	activity *ActivityService
	service  *BotService
	ctx      context.Context
}

func (suite *BotServiceTestSuite) SetupTest() {
	log := newQuietLogger()
	suite.repo = &MockBotRepository{}
	suite.activity = NewActivityService(log)
	suite.ctx = context.Background()
	suite.service = NewBotService(suite.repo, stubResponder{reply: models.ChatReply{Response: "hi", Confidence: 0.8, Resolved: true}}, suite.activity, log)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return fixed }
}

func (suite *BotServiceTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
}

func (suite *BotServiceTestSuite) TestCreateBotDefaults() {
	suite.repo.On("CreateBot", suite.ctx, mock.AnythingOfType("*models.AIBot")).Return(nil)

	bot, err := suite.service.CreateBot(suite.ctx, &models.CreateBotRequest{
		Name:     " Front Desk ",
		Type:     models.BotTypeAppointment,
		Channels: []string{"whatsapp", "website"},
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Front Desk", bot.Name)
	assert.Equal(suite.T(), models.DefaultBusinessID, bot.BusinessID)
	assert.Equal(suite.T(), models.BotStatusDraft, bot.Status)
	assert.Equal(suite.T(), "en", bot.Configuration.Language)
	assert.Equal(suite.T(), models.DefaultTimezone, bot.Configuration.Timezone)
	assert.Equal(suite.T(), models.DefaultBotModel, bot.AIModel.Model)
	assert.Equal(suite.T(), models.DefaultBotMaxTokens, bot.AIModel.MaxTokens)
	assert.NotNil(suite.T(), bot.TrainingData.FAQs)
	assert.Equal(suite.T(), models.ActivityBotCreated, suite.activity.Recent(1)[0].Event)
}

func (suite *BotServiceTestSuite) TestCreateBotValidation() {
	_, err := suite.service.CreateBot(suite.ctx, &models.CreateBotRequest{
		Name:     "Front Desk",
		Type:     models.BotTypeSales,
		Channels: []string{"fax"},
	})

	var verr *ValidationError
	require.ErrorAs(suite.T(), err, &verr)
	assert.Equal(suite.T(), "channels[0]", verr.Fields[0].Field)
}

func (suite *BotServiceTestSuite) TestGetBotNotFound() {
	suite.repo.On("GetBot", suite.ctx, "nope").Return(nil, repository.ErrBotNotFound)

	_, err := suite.service.GetBot(suite.ctx, "nope")

	var nf *NotFoundError
	require.ErrorAs(suite.T(), err, &nf)
	assert.Equal(suite.T(), "AI bot", nf.Resource)
}

func (suite *BotServiceTestSuite) TestUpdateBotTracksFields() {
	bot := &models.AIBot{ID: "b1", Name: "Old", Status: models.BotStatusDraft}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)
	suite.repo.On("SaveBot", suite.ctx, bot).Return(nil)

	desc := "Answers booking questions"
	updated, err := suite.service.UpdateBot(suite.ctx, "b1", &models.UpdateBotRequest{
		Name:        "New Name",
		Description: &desc,
		Status:      models.BotStatusActive,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Name", updated.Name)
	assert.Equal(suite.T(), models.BotStatusActive, updated.Status)
	payload := suite.activity.Recent(1)[0].Payload
	assert.Equal(suite.T(), []string{"name", "description", "status"}, payload["updatedFields"])
}

func (suite *BotServiceTestSuite) TestTrainBotAppends() {
	bot := &models.AIBot{
		ID:     "b1",
		Status: models.BotStatusActive,
		TrainingData: models.TrainingData{
			FAQs:         []models.FAQ{{Question: "q1", Answer: "a1"}},
			BusinessInfo: models.BotBusinessInfo{Name: "Sharma Dental", Hours: "9-5"},
		},
	}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)
	suite.repo.On("SaveBot", suite.ctx, bot).Return(nil)

	result, err := suite.service.TrainBot(suite.ctx, "b1", &models.TrainBotRequest{
		FAQs:            []models.FAQ{{Question: "q2", Answer: "a2"}},
		CustomResponses: []models.CustomResponse{{Trigger: "price", Response: "From 999"}},
		BusinessInfo:    &models.BotBusinessInfo{Location: "Pune"},
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BotStatusTraining, result.Status)
	assert.Equal(suite.T(), 2, result.TotalFAQs)
	assert.Equal(suite.T(), 1, result.TotalResponses)
	assert.Equal(suite.T(), "Sharma Dental", bot.TrainingData.BusinessInfo.Name)
	assert.Equal(suite.T(), "Pune", bot.TrainingData.BusinessInfo.Location)
}

func (suite *BotServiceTestSuite) TestChatRequiresActiveBot() {
	suite.repo.On("GetBot", suite.ctx, "b1").Return(&models.AIBot{ID: "b1", Status: models.BotStatusDraft}, nil)

	_, err := suite.service.Chat(suite.ctx, "b1", &models.ChatRequest{Message: "hello"})

	var ierr *InvalidStateError
	require.ErrorAs(suite.T(), err, &ierr)
	assert.Equal(suite.T(), "AI Bot is not active", ierr.Reason)
}

func (suite *BotServiceTestSuite) TestChatRecordsPerformance() {
	bot := &models.AIBot{
		ID:          "b1",
		Status:      models.BotStatusActive,
		Performance: models.BotPerformance{TotalConversations: 1, SuccessfulResolutions: 0, EscalationRate: 100},
	}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)
	suite.repo.On("SaveBot", suite.ctx, bot).Return(nil)

	result, err := suite.service.Chat(suite.ctx, "b1", &models.ChatRequest{
		Message: "hello",
		Context: map[string]string{"channel": "whatsapp"},
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "hi", result.Response)
	assert.NotEmpty(suite.T(), result.ConversationID)
	assert.NotNil(suite.T(), result.Suggestions)
	assert.Equal(suite.T(), 2, bot.Performance.TotalConversations)
	assert.Equal(suite.T(), 1, bot.Performance.SuccessfulResolutions)
	assert.Equal(suite.T(), 50.0, bot.Performance.EscalationRate)
	assert.Equal(suite.T(), "whatsapp", suite.activity.Recent(1)[0].Payload["channel"])
}

func (suite *BotServiceTestSuite) TestChatSaveFailureStillReplies() {
	bot := &models.AIBot{ID: "b1", Status: models.BotStatusActive}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)
	suite.repo.On("SaveBot", suite.ctx, bot).Return(errors.New("throttled"))

	result, err := suite.service.Chat(suite.ctx, "b1", &models.ChatRequest{Message: "hello", ConversationID: "conv-9"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "conv-9", result.ConversationID)
}

func (suite *BotServiceTestSuite) TestPerformanceView() {
	feedback := make([]models.UserFeedback, 0, 7)
	for i := 1; i <= 7; i++ {
		feedback = append(feedback, models.UserFeedback{Rating: (i % 5) + 1})
	}
	bot := &models.AIBot{
		ID:          "b1",
		Name:        "Front Desk",
		Performance: models.BotPerformance{TotalConversations: 3, SuccessfulResolutions: 2},
		Analytics:   models.BotAnalytics{UserFeedback: feedback},
	}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)

	view, err := suite.service.Performance(suite.ctx, "b1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 66.67, view.ResolutionRate)
	assert.Equal(suite.T(), 7, view.FeedbackCount)
	require.Len(suite.T(), view.RecentFeedback, 5)
	assert.Equal(suite.T(), feedback[2], view.RecentFeedback[0])
}

func (suite *BotServiceTestSuite) TestSubmitFeedbackAverages() {
	bot := &models.AIBot{
		ID:        "b1",
		Analytics: models.BotAnalytics{UserFeedback: []models.UserFeedback{{Rating: 5}, {Rating: 4}}},
	}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)
	suite.repo.On("SaveBot", suite.ctx, bot).Return(nil)

	result, err := suite.service.SubmitFeedback(suite.ctx, "b1", &models.FeedbackRequest{Rating: 2, Comment: "slow"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, result.TotalFeedback)
	assert.Equal(suite.T(), 3.67, result.AverageRating)
}

func (suite *BotServiceTestSuite) TestSubmitFeedbackRejectsRating() {
	_, err := suite.service.SubmitFeedback(suite.ctx, "b1", &models.FeedbackRequest{Rating: 6})

	var verr *ValidationError
	assert.ErrorAs(suite.T(), err, &verr)
}

func (suite *BotServiceTestSuite) TestArchiveBot() {
	bot := &models.AIBot{ID: "b1", Status: models.BotStatusActive}
	suite.repo.On("GetBot", suite.ctx, "b1").Return(bot, nil)
	suite.repo.On("SaveBot", suite.ctx, bot).Return(nil)

	require.NoError(suite.T(), suite.service.ArchiveBot(suite.ctx, "b1"))
	assert.Equal(suite.T(), models.BotStatusArchived, bot.Status)
}

func (suite *BotServiceTestSuite) TestListBotsFilters() {
	bots := []*models.AIBot{
		{ID: "a", Name: "Sales Helper", Type: models.BotTypeSales, Status: models.BotStatusActive},
		{ID: "b", Name: "Desk", Type: models.BotTypeAppointment, Status: models.BotStatusActive},
		{ID: "c", Name: "Sales Old", Type: models.BotTypeSales, Status: models.BotStatusArchived},
	}
	suite.repo.On("ListBots", suite.ctx).Return(bots, nil)

	page, pagination, err := suite.service.ListBots(suite.ctx, models.BotFilter{
		Type:   models.BotTypeSales,
		Status: models.BotStatusActive,
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), page, 1)
	assert.Equal(suite.T(), "a", page[0].ID)
	assert.Equal(suite.T(), 1, pagination.TotalItems)
}

func TestBotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BotServiceTestSuite))
}
