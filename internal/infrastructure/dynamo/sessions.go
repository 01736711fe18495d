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

// SessionRepo provides typed DynamoDB operations for the upload sessions
// table. Sessions are only created through RequestRepo.Redeem.
type SessionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSessionRepo(client *dynamodb.Client, tableName string) *SessionRepo {
	return &SessionRepo{client: client, tableName: tableName}
}

// GetByTokenHash looks up a session by the hash of its bearer token via
// the token_hash-index GSI.
func (r *SessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UploadSession, error) {
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
		return nil, fmt.Errorf("upload session not found: %w", domain.ErrNotFound)
	}
	var sess domain.UploadSession
	if err := attributevalue.UnmarshalMap(out.Items[0], &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Touch refreshes last_used_at. Expiry is absolute, so this is
// bookkeeping only and never extends the session.
func (r *SessionRepo) Touch(ctx context.Context, sessionID string, at time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{fieldLastUsedAt: at})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("session_id", sessionID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
