package dal

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

type DynamoDBClient struct {
	client *dynamodb.Client
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		))
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// Override endpoint for local DynamoDB
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	log.Info("DynamoDB client initialized")
	return &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}, nil
}

func (db *DynamoDBClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.config.ExternalCallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.config.ExternalCallTimeout)
}

// GetItem retrieves an item by its string partition key. result is left untouched when the item does not exist.
func (db *DynamoDBClient) GetItem(ctx context.Context, tableName, key, value string, result interface{}) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	output, err := db.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		db.logger.Errorf("Failed to get item from %s: %v", tableName, err)
		return err
	}

	if output.Item == nil {
		return nil
	}

	return attributevalue.UnmarshalMap(output.Item, result)
}

// PutItem stores an item in DynamoDB
func (db *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	})
	return classify(err)
}

// UpdateItem sets the given top-level attributes of an item
func (db *DynamoDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	// Sorted so the generated expression is stable
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	assignments := make([]string, 0, len(fields))
	expressionAttributeNames := make(map[string]string)
	expressionAttributeValues := make(map[string]types.AttributeValue)

	for _, field := range fields {
		attrName := "#" + field
		attrValue := ":" + field

		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return err
		}
		assignments = append(assignments, attrName+" = "+attrValue)
		expressionAttributeNames[attrName] = field
		expressionAttributeValues[attrValue] = av
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	_, err := db.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: keyValue},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(assignments, ", ")),
		ExpressionAttributeNames:  expressionAttributeNames,
		ExpressionAttributeValues: expressionAttributeValues,
		ReturnValues:              types.ReturnValueNone,
	})
	return classify(err)
}

// TransactWrite applies all ops atomically. A rejected condition surfaces as ErrConditionFailed.
func (db *DynamoDBClient) TransactWrite(ctx context.Context, ops []WriteOp) error {
	items, err := BuildTransactItems(ops)
	if err != nil {
		return err
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	_, err = db.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return classify(err)
}

// BuildTransactItems converts WriteOps into DynamoDB transaction members
func BuildTransactItems(ops []WriteOp) ([]types.TransactWriteItem, error) {
	items := make([]types.TransactWriteItem, 0, len(ops))
	for _, op := range ops {
		var names map[string]string
		var values map[string]types.AttributeValue
		if op.Condition != "" {
			names = op.ConditionNames
			if len(op.ConditionValues) > 0 {
				values = make(map[string]types.AttributeValue, len(op.ConditionValues))
				for k, v := range op.ConditionValues {
					av, err := attributevalue.Marshal(v)
					if err != nil {
						return nil, fmt.Errorf("failed to marshal condition value %s: %w", k, err)
					}
					values[k] = av
				}
			}
		}

		switch op.Kind {
		case WritePut:
			av, err := attributevalue.MarshalMap(op.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal item: %w", err)
			}
			put := &types.Put{
				TableName:                 aws.String(op.TableName),
				Item:                      av,
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			}
			if op.Condition != "" {
				put.ConditionExpression = aws.String(op.Condition)
			}
			items = append(items, types.TransactWriteItem{Put: put})
		case WriteDelete:
			del := &types.Delete{
				TableName: aws.String(op.TableName),
				Key: map[string]types.AttributeValue{
					op.KeyName: &types.AttributeValueMemberS{Value: op.KeyValue},
				},
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			}
			if op.Condition != "" {
				del.ConditionExpression = aws.String(op.Condition)
			}
			items = append(items, types.TransactWriteItem{Delete: del})
		default:
			return nil, fmt.Errorf("unknown write kind %d", op.Kind)
		}
	}
	return items, nil
}

// classify maps DynamoDB condition failures onto ErrConditionFailed
func classify(err error) error {
	if err == nil {
		return nil
	}

	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, reason := range canceled.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return fmt.Errorf("%w: %v", ErrConditionFailed, err)
			}
		}
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException" {
		return fmt.Errorf("%w: %v", ErrConditionFailed, err)
	}
	return err
}

// QueryByIndex queries every page of a global secondary index for a string key
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	paginator := dynamodb.NewQueryPaginator(db.client, &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": keyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": &types.AttributeValueMemberS{Value: keyValue},
		},
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

// Scan reads every page of a table
func (db *DynamoDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	paginator := dynamodb.NewScanPaginator(db.client, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	return db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
}
