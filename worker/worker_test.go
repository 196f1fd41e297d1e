package worker

import (
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockDBClient covers the table management calls the worker makes
type MockDBClient struct {
	mock.Mock
}

func (m *MockDBClient) GetItem(ctx context.Context, tableName, key, value string, result interface{}) error {
	return m.Called(ctx, tableName, key, value, result).Error(0)
}
func (m *MockDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	return m.Called(ctx, tableName, item).Error(0)
}
func (m *MockDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	return m.Called(ctx, tableName, key, keyValue, updates).Error(0)
}
func (m *MockDBClient) TransactWrite(ctx context.Context, ops []dal.WriteOp) error {
	return m.Called(ctx, ops).Error(0)
}
func (m *MockDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	return m.Called(ctx, tableName, indexName, keyName, keyValue, results).Error(0)
}
func (m *MockDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	return m.Called(ctx, tableName, results).Error(0)
}
func (m *MockDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	return m.Called(ctx, input).Error(0)
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
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		l.On(method, mock.Anything).Return().Maybe()
	}
	return l
}

type countingSender struct {
	sent  int
	err   error
	calls int
}

func (c *countingSender) SendDueReminders(ctx context.Context) (int, error) {
	c.calls++
	return c.sent, c.err
}

var tableNotFound = &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "Requested resource not found"}

type WorkerTestSuite struct {
	suite.Suite
	db     *MockDBClient
	cfg    *models.Config
	logger *MockLogger
}

func (suite *WorkerTestSuite) SetupTest() {
	dir := suite.T().TempDir()
	suite.db = &MockDBClient{}
	suite.logger = newQuietLogger()
	suite.cfg = &models.Config{
		AppEnv:              "test",
		DynamoDBTablePrefix: "test",
		Tables:              []string{"leads", "slots"},
		ReminderSchedule:    "0 */15 * * * *",
		WorkerLockPath:      filepath.Join(dir, "reminders.lock"),
		WorkerStatusPath:    filepath.Join(dir, "status.json"),
		ExternalCallTimeout: time.Second,
	}
}

func (suite *WorkerTestSuite) TearDownTest() {
	suite.db.AssertExpectations(suite.T())
}

func (suite *WorkerTestSuite) TestBootstrapCreatesMissingTables() {
	suite.db.On("DescribeTable", mock.Anything, "test_leads").Return(&dynamodb.DescribeTableOutput{}, nil)
	suite.db.On("DescribeTable", mock.Anything, "test_slots").Return(nil, tableNotFound)
	suite.db.On("CreateTable", mock.Anything, mock.MatchedBy(func(in *dynamodb.CreateTableInput) bool {
		return aws.ToString(in.TableName) == "test_slots"
	})).Return(nil)

	sm := NewStatusManager(suite.cfg.WorkerStatusPath)
	err := NewTableBootstrap(suite.cfg, suite.db, suite.logger).Execute(context.Background(), sm)

	require.NoError(suite.T(), err)
	snap := sm.Snapshot()
	require.Len(suite.T(), snap.Tables, 2)
	assert.Equal(suite.T(), tableExists, snap.Tables[0].Status)
	assert.Equal(suite.T(), tableCreated, snap.Tables[1].Status)
}

func (suite *WorkerTestSuite) TestBootstrapGivesUpAfterRetries() {
	suite.db.On("DescribeTable", mock.Anything, "test_leads").Return(nil, tableNotFound)
	suite.db.On("CreateTable", mock.Anything, mock.Anything).Return(errors.New("LimitExceededException"))

	bootstrap := NewTableBootstrap(suite.cfg, suite.db, suite.logger)
	bootstrap.baseDelay = time.Millisecond
	sm := NewStatusManager(suite.cfg.WorkerStatusPath)

	err := bootstrap.Execute(context.Background(), sm)

	require.Error(suite.T(), err)
	suite.db.AssertNumberOfCalls(suite.T(), "CreateTable", 4)
	snap := sm.Snapshot()
	assert.Equal(suite.T(), 3, snap.RetryCount)
	assert.Equal(suite.T(), tableFailed, snap.Tables[0].Status)
}

func (suite *WorkerTestSuite) TestBootstrapLogsStatusWriteFailure() {
	blocker := filepath.Join(suite.T().TempDir(), "blocker")
	require.NoError(suite.T(), os.WriteFile(blocker, []byte("x"), 0644))
	suite.db.On("DescribeTable", mock.Anything, mock.Anything).Return(&dynamodb.DescribeTableOutput{}, nil)

	sm := NewStatusManager(filepath.Join(blocker, "status.json"))
	err := NewTableBootstrap(suite.cfg, suite.db, suite.logger).Execute(context.Background(), sm)

	require.NoError(suite.T(), err)
	suite.logger.AssertCalled(suite.T(), "Warnf", "Failed to update worker status: %v", mock.Anything)
	snap := sm.Snapshot()
	require.Len(suite.T(), snap.Tables, 2)
	assert.Equal(suite.T(), tableExists, snap.Tables[1].Status)
}

func (suite *WorkerTestSuite) TestRunNowLogsStatusWriteFailure() {
	blocker := filepath.Join(suite.T().TempDir(), "blocker")
	require.NoError(suite.T(), os.WriteFile(blocker, []byte("x"), 0644))
	suite.cfg.WorkerStatusPath = filepath.Join(blocker, "status.json")
	sender := &countingSender{sent: 1}

	w, err := NewWorker(suite.cfg, suite.db, sender, suite.logger)
	require.NoError(suite.T(), err)
	sent, err := w.RunNow(context.Background())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, sent)
	suite.logger.AssertCalled(suite.T(), "Warnf", "Failed to update worker status: %v", mock.Anything)
}

func (suite *WorkerTestSuite) TestStartAndStop() {
	suite.db.On("DescribeTable", mock.Anything, mock.Anything).Return(&dynamodb.DescribeTableOutput{}, nil)

	w, err := NewWorker(suite.cfg, suite.db, &countingSender{}, suite.logger)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), w.Start())
	assert.True(suite.T(), w.IsRunning())
	assert.Equal(suite.T(), models.StatusCompleted, w.Status().Status)
	assert.Error(suite.T(), w.Start())

	require.NoError(suite.T(), w.Stop())
	assert.False(suite.T(), w.IsRunning())

	loaded, err := LoadStatus(suite.cfg.WorkerStatusPath)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusStopped, loaded.Status)
}

func (suite *WorkerTestSuite) TestNewWorkerRejectsBadSchedule() {
	suite.cfg.ReminderSchedule = "every quarter hour"

	_, err := NewWorker(suite.cfg, suite.db, &countingSender{}, suite.logger)

	assert.Error(suite.T(), err)
}

func (suite *WorkerTestSuite) TestRunNowRecordsReminders() {
	sender := &countingSender{sent: 2}
	w, err := NewWorker(suite.cfg, suite.db, sender, suite.logger)
	require.NoError(suite.T(), err)

	sent, err := w.RunNow(context.Background())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, sent)
	loaded, err := LoadStatus(suite.cfg.WorkerStatusPath)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, loaded.LastReminderCount)
	assert.Equal(suite.T(), 2, loaded.RemindersSent)
	assert.NotNil(suite.T(), loaded.LastReminderRun)
	assert.NoFileExists(suite.T(), suite.cfg.WorkerLockPath)
}

func (suite *WorkerTestSuite) TestRunNowSkipsWhenLockHeld() {
	sender := &countingSender{sent: 2}
	other := NewLockManager(suite.cfg.WorkerLockPath, time.Minute, suite.cfg.AppEnv)
	_, err := other.AcquireLock("worker-elsewhere")
	require.NoError(suite.T(), err)

	w, err := NewWorker(suite.cfg, suite.db, sender, suite.logger)
	require.NoError(suite.T(), err)
	sent, err := w.RunNow(context.Background())

	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), sent)
	assert.Zero(suite.T(), sender.calls)
}

func (suite *WorkerTestSuite) TestRunNowReportsFailure() {
	w, err := NewWorker(suite.cfg, suite.db, &countingSender{err: errors.New("throttled")}, suite.logger)
	require.NoError(suite.T(), err)

	_, err = w.RunNow(context.Background())

	require.Error(suite.T(), err)
	loaded, err := LoadStatus(suite.cfg.WorkerStatusPath)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "degraded", loaded.HealthStatus)
	assert.Equal(suite.T(), "throttled", loaded.ErrorMessage)
}

func TestIsTableNotFoundError(t *testing.T) {
	assert.True(t, isTableNotFoundError(tableNotFound))
	assert.True(t, isTableNotFoundError(errors.New("ResourceNotFoundException: gone")))
	assert.False(t, isTableNotFoundError(errors.New("AccessDenied")))
	assert.False(t, isTableNotFoundError(nil))
}

func TestWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}
