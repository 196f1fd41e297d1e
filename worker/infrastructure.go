package worker

import (
	"aihub-backend/dal"
	"aihub-backend/infrastructure"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/smithy-go"
)

const (
	tableCreated = "CREATED"
	tableExists  = "EXISTS"
	tableFailed  = "FAILED"
)

// TableBootstrap makes sure every configured collection has its DynamoDB table
type TableBootstrap struct {
	config     *models.Config
	db         dal.DatabaseClientInterface
	logger     logger.Logger
	maxRetries int
	baseDelay  time.Duration
}

func NewTableBootstrap(cfg *models.Config, db dal.DatabaseClientInterface, log logger.Logger) *TableBootstrap {
	return &TableBootstrap{
		config:     cfg,
		db:         db,
		logger:     log,
		maxRetries: 3,
		baseDelay:  5 * time.Second,
	}
}

// Execute creates missing tables one by one and records each outcome in statusManager
func (tb *TableBootstrap) Execute(ctx context.Context, statusManager *StatusManager) error {
	tb.logger.Info("Checking DynamoDB tables")

	for _, collection := range tb.config.Tables {
		tableName := tb.config.TableName(collection)

		created, err := tb.createTableWithRetry(ctx, collection, tableName, statusManager)
		if err != nil {
			tb.logger.Errorf("Failed to create table %s: %v", tableName, err)
			if serr := statusManager.RecordTable(tableName, tableFailed); serr != nil {
				tb.logger.Warnf("Failed to update worker status: %v", serr)
			}
			return err
		}

		state := tableExists
		if created {
			state = tableCreated
			tb.logger.Infof("Created table: %s", tableName)
		}
		if err := statusManager.RecordTable(tableName, state); err != nil {
			tb.logger.Warnf("Failed to update worker status: %v", err)
		}
	}
	return nil
}

// createTableWithRetry reports whether the table had to be created
func (tb *TableBootstrap) createTableWithRetry(ctx context.Context, collection, tableName string, statusManager *StatusManager) (bool, error) {
	for attempt := 0; attempt <= tb.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * tb.baseDelay
			tb.logger.Infof("Retrying table creation for %s in %v (attempt %d/%d)", tableName, delay, attempt+1, tb.maxRetries+1)
			if err := statusManager.Update(func(r *models.ExecutionResult) {
				r.Status = models.StatusRetrying
				r.RetryCount++
			}); err != nil {
				tb.logger.Warnf("Failed to update worker status: %v", err)
			}

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}

		exists, err := tb.tableExists(ctx, tableName)
		if err != nil {
			tb.logger.Errorf("Failed to check if table exists: %v", err)
			if attempt == tb.maxRetries {
				return false, fmt.Errorf("failed to describe table %s: %w", tableName, err)
			}
			continue
		}
		if exists {
			tb.logger.Debugf("Table %s already exists, skipping creation", tableName)
			return false, nil
		}

		if err := tb.createTable(ctx, collection, tableName); err != nil {
			tb.logger.Errorf("Attempt %d failed to create table %s: %v", attempt+1, tableName, err)
			if attempt == tb.maxRetries {
				return false, fmt.Errorf("failed to create table %s after %d attempts: %w", tableName, tb.maxRetries+1, err)
			}
			continue
		}
		return true, nil
	}

	return false, fmt.Errorf("exhausted all retry attempts for table %s", tableName)
}

func (tb *TableBootstrap) createTable(ctx context.Context, collection, tableName string) error {
	input, err := infrastructure.GetTable(collection, tableName)
	if err != nil {
		return fmt.Errorf("failed to get table input: %w", err)
	}
	if err := tb.db.CreateTable(ctx, input); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (tb *TableBootstrap) tableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := tb.db.DescribeTable(ctx, tableName)
	if err != nil {
		if isTableNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isTableNotFoundError checks if error indicates table not found
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	errorStr := err.Error()
	return strings.Contains(errorStr, "ResourceNotFoundException") ||
		strings.Contains(errorStr, "Requested resource not found")
}
