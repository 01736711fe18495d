package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/alphasourceai/upload-portal/internal/domain"
)

// RequestRepo provides typed DynamoDB operations for the upload requests
// table. Redeem also writes to the sessions table, so the repo carries both
// table names.
type RequestRepo struct {
	client        *dynamodb.Client
	tableName     string
	sessionsTable string
}

func NewRequestRepo(client *dynamodb.Client, tableName, sessionsTable string) *RequestRepo {
	return &RequestRepo{client: client, tableName: tableName, sessionsTable: sessionsTable}
}

func (r *RequestRepo) Put(ctx context.Context, req *domain.UploadRequest) error {
	item, err := attributevalue.MarshalMap(req)
	if err != nil {
		return fmt.Errorf("marshal upload request: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RequestRepo) Get(ctx context.Context, requestID string) (*domain.UploadRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("request_id", requestID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("upload request not found: %w", domain.ErrNotFound)
	}
	var req domain.UploadRequest
	if err := attributevalue.UnmarshalMap(out.Item, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByTokenHash looks up a request by the hash of its magic-link token
// via the token_hash-index GSI.
func (r *RequestRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UploadRequest, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("token_hash-index"),
		KeyConditionExpression: aws.String("token_hash = :h"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h": &types.AttributeValueMemberS{Value: tokenHash},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("upload request not found: %w", domain.ErrNotFound)
	}
	var req domain.UploadRequest
	if err := attributevalue.UnmarshalMap(out.Items[0], &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Redeem marks the request used and creates its session in one
// transaction. The used_at condition guarantees at most one redemption:
// of two concurrent callers, exactly one succeeds and the other receives
// domain.ErrConflict.
func (r *RequestRepo) Redeem(ctx context.Context, requestID string, usedAt time.Time, sess *domain.UploadSession) error {
	usedAtAV, err := attributevalue.Marshal(usedAt)
	if err != nil {
		return fmt.Errorf("marshal used_at: %w", err)
	}
	sessItem, err := attributevalue.MarshalMap(sess)
	if err != nil {
		return fmt.Errorf("marshal upload session: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:           aws.String(r.tableName),
					Key:                 strKey("request_id", requestID),
					UpdateExpression:    aws.String("SET used_at = :u"),
					ConditionExpression: aws.String("attribute_exists(request_id) AND attribute_not_exists(used_at)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":u": usedAtAV,
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.sessionsTable),
					Item:                sessItem,
					ConditionExpression: aws.String("attribute_not_exists(session_id)"),
				},
			},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("request already redeemed: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}
