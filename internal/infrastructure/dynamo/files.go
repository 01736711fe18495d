package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/alphasourceai/upload-portal/internal/domain"
)

// FileRepo provides typed DynamoDB operations for the upload files table.
type FileRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewFileRepo(client *dynamodb.Client, tableName string) *FileRepo {
	return &FileRepo{client: client, tableName: tableName}
}

func (r *FileRepo) Put(ctx context.Context, f *domain.UploadFile) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal upload file: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *FileRepo) Get(ctx context.Context, fileID string) (*domain.UploadFile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("file_id", fileID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("upload file not found: %w", domain.ErrNotFound)
	}
	var f domain.UploadFile
	if err := attributevalue.UnmarshalMap(out.Item, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Complete records the resolved account and completion time. The
// completed_at condition keeps completion idempotent under races: a
// caller that loses receives domain.ErrConflict and the original
// timestamp is preserved.
func (r *FileRepo) Complete(ctx context.Context, fileID, accountID, accountEmail string, at time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldAccountID:    accountID,
		fieldAccountEmail: accountEmail,
		fieldCompletedAt:  at,
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("file_id", fileID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(file_id) AND attribute_not_exists(completed_at)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("upload already completed: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// ListRecent returns up to limit files, newest first. The table stays
// small (one row per intended upload), so a scan with in-memory ordering
// is acceptable for the dashboard inbox.
func (r *FileRepo) ListRecent(ctx context.Context, limit int) ([]domain.UploadFile, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var files []domain.UploadFile
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &files); err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
