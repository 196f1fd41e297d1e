package dal

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ErrConditionFailed is returned when a conditional write or transaction is rejected
var ErrConditionFailed = errors.New("conditional check failed")

// WriteKind selects the operation of a transactional write
type WriteKind int

const (
	WritePut WriteKind = iota
	WriteDelete
)

// WriteOp is one member of a TransactWrite call
type WriteOp struct {
	Kind      WriteKind
	TableName string

	// Put
	Item interface{}

	// Delete
	KeyName  string
	KeyValue string

	// Optional condition expression; attribute values are marshalled with attributevalue
	Condition       string
	ConditionNames  map[string]string
	ConditionValues map[string]interface{}
}

// DatabaseClientInterface defines the contract for database operations
type DatabaseClientInterface interface {
	// Core CRUD operations
	GetItem(ctx context.Context, tableName, key, value string, result interface{}) error
	PutItem(ctx context.Context, tableName string, item interface{}) error
	UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error
	TransactWrite(ctx context.Context, ops []WriteOp) error

	// Query and Scan operations
	QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error
	Scan(ctx context.Context, tableName string, results interface{}) error

	// Table management operations
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
}
