package repository

import (
	"aihub-backend/models"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BotRepositoryTestSuite struct {
	suite.Suite
	db   *MockDBClient
	repo *BotRepository
	ctx  context.Context
}

func (suite *BotRepositoryTestSuite) SetupTest() {
	suite.db = &MockDBClient{}
	suite.repo = NewBotRepository(suite.db, &models.Config{DynamoDBTablePrefix: "test"}, newQuietLogger())
	suite.ctx = context.Background()
}

func (suite *BotRepositoryTestSuite) TearDownTest() {
	suite.db.AssertExpectations(suite.T())
}

func (suite *BotRepositoryTestSuite) TestCreateBot() {
	bot := &models.AIBot{ID: "b1", Name: "Helper"}
	suite.db.On("PutItem", suite.ctx, "test_bots", bot).Return(nil).Once()

	assert.NoError(suite.T(), suite.repo.CreateBot(suite.ctx, bot))
}

func (suite *BotRepositoryTestSuite) TestCreateBotError() {
	bot := &models.AIBot{ID: "b1"}
	suite.db.On("PutItem", suite.ctx, "test_bots", bot).Return(errors.New("throttled")).Once()

	assert.EqualError(suite.T(), suite.repo.CreateBot(suite.ctx, bot), "throttled")
}

func (suite *BotRepositoryTestSuite) TestGetBotEmptyID() {
	_, err := suite.repo.GetBot(suite.ctx, "")
	assert.ErrorIs(suite.T(), err, ErrBotNotFound)
}

func (suite *BotRepositoryTestSuite) TestGetBotMissing() {
	suite.db.On("GetItem", suite.ctx, "test_bots", "id", "nope", mock.Anything).Return(nil, nil).Once()

	_, err := suite.repo.GetBot(suite.ctx, "nope")
	assert.ErrorIs(suite.T(), err, ErrBotNotFound)
}

func (suite *BotRepositoryTestSuite) TestGetBot() {
	suite.db.On("GetItem", suite.ctx, "test_bots", "id", "b1", mock.Anything).
		Return(nil, func(out interface{}) {
			b := out.(*models.AIBot)
			b.ID = "b1"
			b.Name = "Helper"
		}).Once()

	bot, err := suite.repo.GetBot(suite.ctx, "b1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Helper", bot.Name)
}

func (suite *BotRepositoryTestSuite) TestListBots() {
	suite.db.On("Scan", suite.ctx, "test_bots", mock.Anything).
		Return(nil, func(out interface{}) {
			*out.(*[]*models.AIBot) = []*models.AIBot{{ID: "b1"}}
		}).Once()

	bots, err := suite.repo.ListBots(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), bots, 1)
}

func TestBotRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(BotRepositoryTestSuite))
}
