package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/eventpill-api/internal/domain"
)

// putItemAPI is the slice of *dynamodb.Client the error log needs.
type putItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ErrorLogRepo appends error records to the error_logs table.
// PK: error_id. Items are never updated or read by the service.
type ErrorLogRepo struct {
	client    putItemAPI
	tableName string
}

func NewErrorLogRepo(client putItemAPI, tableName string) *ErrorLogRepo {
	return &ErrorLogRepo{client: client, tableName: tableName}
}

// Write stores rec. The condition makes each error_id write-once.
func (r *ErrorLogRepo) Write(ctx context.Context, rec *domain.ErrorRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal error record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldErrorID},
	})
	if err != nil {
		return fmt.Errorf("put error record: %w", err)
	}
	return nil
}
