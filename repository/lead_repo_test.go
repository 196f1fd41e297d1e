package repository

import (
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockDBClient is a mock implementation of dal.DatabaseClientInterface
type MockDBClient struct {
	mock.Mock
}

func (m *MockDBClient) GetItem(ctx context.Context, tableName, key, value string, result interface{}) error {
	args := m.Called(ctx, tableName, key, value, result)
	if fn, ok := args.Get(1).(func(interface{})); ok && fn != nil {
		fn(result)
	}
	return args.Error(0)
}

func (m *MockDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	args := m.Called(ctx, tableName, item)
	return args.Error(0)
}

func (m *MockDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	args := m.Called(ctx, tableName, key, keyValue, updates)
	return args.Error(0)
}

func (m *MockDBClient) TransactWrite(ctx context.Context, ops []dal.WriteOp) error {
	args := m.Called(ctx, ops)
	return args.Error(0)
}

func (m *MockDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	args := m.Called(ctx, tableName, indexName, keyName, keyValue, results)
	if fn, ok := args.Get(1).(func(interface{})); ok && fn != nil {
		fn(results)
	}
	return args.Error(0)
}

func (m *MockDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	args := m.Called(ctx, tableName, results)
	if fn, ok := args.Get(1).(func(interface{})); ok && fn != nil {
		fn(results)
	}
	return args.Error(0)
}

func (m *MockDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, tableName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DescribeTableOutput), args.Error(1)
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
	return l
}

type LeadRepositoryTestSuite struct {
	suite.Suite
	db     *MockDBClient
	config *models.Config
	repo   *LeadRepository
	ctx    context.Context
}

func (suite *LeadRepositoryTestSuite) SetupTest() {
	suite.db = &MockDBClient{}
	suite.config = &models.Config{DynamoDBTablePrefix: "test", EnforceSlotUniqueness: true}
	suite.repo = NewLeadRepository(suite.db, suite.config, newQuietLogger())
	suite.ctx = context.Background()
}

func (suite *LeadRepositoryTestSuite) TearDownTest() {
	suite.db.AssertExpectations(suite.T())
}

func demoLead(id, date, slot string, status models.LeadStatus) *models.Lead {
	d, _ := time.Parse(models.DateLayout, date)
	return &models.Lead{
		ID:          id,
		InquiryType: models.InquiryTypeDemo,
		Status:      status,
		DemoDetails: &models.DemoDetails{PreferredDate: d, PreferredTime: slot, Timezone: models.DefaultTimezone},
	}
}

func (suite *LeadRepositoryTestSuite) TestCreateContactLeadUsesPlainPut() {
	lead := &models.Lead{ID: "c1", InquiryType: models.InquiryTypePricing, Status: models.LeadStatusPending}
	suite.db.On("PutItem", suite.ctx, "test_leads", lead).Return(nil).Once()

	require.NoError(suite.T(), suite.repo.CreateLead(suite.ctx, lead))
	assert.Empty(suite.T(), lead.SlotDate)
}

func (suite *LeadRepositoryTestSuite) TestCreateDemoLeadClaimsSlot() {
	lead := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusPending)
	suite.db.On("TransactWrite", suite.ctx, mock.MatchedBy(func(ops []dal.WriteOp) bool {
		if len(ops) != 2 {
			return false
		}
		claim, ok := ops[1].Item.(models.SlotClaim)
		return ops[0].TableName == "test_leads" &&
			ops[1].TableName == "test_slots" &&
			ok && claim.SlotKey == "2026-03-02#09:00" && claim.LeadID == "d1" &&
			ops[1].Condition == "attribute_not_exists(slotKey)"
	})).Return(nil).Once()

	require.NoError(suite.T(), suite.repo.CreateLead(suite.ctx, lead))
	assert.Equal(suite.T(), "2026-03-02", lead.SlotDate)
}

func (suite *LeadRepositoryTestSuite) TestCreateDemoLeadSlotTaken() {
	lead := demoLead("d2", "2026-03-02", "09:00", models.LeadStatusPending)
	suite.db.On("TransactWrite", suite.ctx, mock.Anything).
		Return(fmt.Errorf("%w: cancelled", dal.ErrConditionFailed)).Once()

	err := suite.repo.CreateLead(suite.ctx, lead)
	assert.ErrorIs(suite.T(), err, ErrSlotTaken)
}

func (suite *LeadRepositoryTestSuite) TestCreateDemoLeadWithoutEnforcement() {
	suite.config.EnforceSlotUniqueness = false
	lead := demoLead("d3", "2026-03-02", "09:00", models.LeadStatusPending)
	suite.db.On("PutItem", suite.ctx, "test_leads", lead).Return(nil).Once()

	require.NoError(suite.T(), suite.repo.CreateLead(suite.ctx, lead))
	suite.db.AssertNotCalled(suite.T(), "TransactWrite", mock.Anything, mock.Anything)
}

func (suite *LeadRepositoryTestSuite) TestGetLeadNotFound() {
	suite.db.On("GetItem", suite.ctx, "test_leads", "id", "missing", mock.Anything).Return(nil, nil).Once()

	_, err := suite.repo.GetLead(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, ErrLeadNotFound)
}

func (suite *LeadRepositoryTestSuite) TestGetLeadFound() {
	suite.db.On("GetItem", suite.ctx, "test_leads", "id", "c1", mock.Anything).
		Return(nil, func(out interface{}) { out.(*models.Lead).ID = "c1" }).Once()

	lead, err := suite.repo.GetLead(suite.ctx, "c1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "c1", lead.ID)
}

func (suite *LeadRepositoryTestSuite) TestGetLeadStorageError() {
	suite.db.On("GetItem", suite.ctx, "test_leads", "id", "c1", mock.Anything).Return(errors.New("boom"), nil).Once()

	_, err := suite.repo.GetLead(suite.ctx, "c1")
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, ErrLeadNotFound)
}

func (suite *LeadRepositoryTestSuite) TestSaveLeadSameSlotUsesPut() {
	prev := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusPending)
	next := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusContacted)
	suite.db.On("PutItem", suite.ctx, "test_leads", next).Return(nil).Once()

	require.NoError(suite.T(), suite.repo.SaveLead(suite.ctx, next, prev))
}

func (suite *LeadRepositoryTestSuite) TestSaveLeadRescheduleMovesClaim() {
	prev := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusPending)
	next := demoLead("d1", "2026-03-03", "14:00", models.LeadStatusContacted)
	suite.db.On("TransactWrite", suite.ctx, mock.MatchedBy(func(ops []dal.WriteOp) bool {
		if len(ops) != 3 {
			return false
		}
		claim := ops[1].Item.(models.SlotClaim)
		return claim.SlotKey == "2026-03-03#14:00" &&
			ops[2].Kind == dal.WriteDelete && ops[2].KeyValue == "2026-03-02#09:00" &&
			ops[2].ConditionValues[":lead"] == "d1"
	})).Return(nil).Once()

	require.NoError(suite.T(), suite.repo.SaveLead(suite.ctx, next, prev))
	assert.Equal(suite.T(), "2026-03-03", next.SlotDate)
}

func (suite *LeadRepositoryTestSuite) TestSaveLeadArchiveReleasesClaim() {
	prev := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusQualified)
	next := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusArchived)
	suite.db.On("TransactWrite", suite.ctx, mock.MatchedBy(func(ops []dal.WriteOp) bool {
		return len(ops) == 2 && ops[1].Kind == dal.WriteDelete && ops[1].KeyValue == "2026-03-02#09:00"
	})).Return(nil).Once()

	require.NoError(suite.T(), suite.repo.SaveLead(suite.ctx, next, prev))
}

func (suite *LeadRepositoryTestSuite) TestSaveLeadReactivationConflict() {
	prev := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusClosed)
	next := demoLead("d1", "2026-03-02", "09:00", models.LeadStatusPending)
	suite.db.On("TransactWrite", suite.ctx, mock.Anything).
		Return(fmt.Errorf("%w: x", dal.ErrConditionFailed)).Once()

	assert.ErrorIs(suite.T(), suite.repo.SaveLead(suite.ctx, next, prev), ErrSlotTaken)
}

func (suite *LeadRepositoryTestSuite) TestListDemoLeadsByDate() {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	suite.db.On("QueryByIndex", suite.ctx, "test_leads", "slotDate-index", "slotDate", "2026-03-02", mock.Anything).
		Return(nil, func(out interface{}) {
			*out.(*[]*models.Lead) = []*models.Lead{demoLead("d1", "2026-03-02", "09:00", models.LeadStatusPending)}
		}).Once()

	leads, err := suite.repo.ListDemoLeadsByDate(suite.ctx, day)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), leads, 1)
}

func (suite *LeadRepositoryTestSuite) TestListLeads() {
	suite.db.On("Scan", suite.ctx, "test_leads", mock.Anything).
		Return(nil, func(out interface{}) {
			*out.(*[]*models.Lead) = []*models.Lead{{ID: "a"}, {ID: "b"}}
		}).Once()

	leads, err := suite.repo.ListLeads(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), leads, 2)
}

func (suite *LeadRepositoryTestSuite) TestMarkReminderSent() {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	suite.db.On("UpdateItem", suite.ctx, "test_leads", "id", "d1", map[string]interface{}{
		"reminderSentAt": at,
		"updatedAt":      at,
	}).Return(nil).Once()

	assert.NoError(suite.T(), suite.repo.MarkReminderSent(suite.ctx, "d1", at))
}

func TestLeadRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LeadRepositoryTestSuite))
}
