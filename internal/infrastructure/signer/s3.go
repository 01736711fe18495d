package signer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/alphasourceai/upload-portal/internal/config"
)

// S3Signer presigns PUT URLs directly against S3-compatible storage, for
// deployments that don't run a separate signing service.
type S3Signer struct {
	presigner *s3.PresignClient
	expiry    time.Duration
}

// NewS3Client creates an S3 client. When cfg.AWSEndpointURL is set (LocalStack
// or another S3-compatible endpoint), it overrides the endpoint and enables
// path-style addressing.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		panic("failed to load AWS config for S3: " + err.Error())
	}

	clientOpts := []func(*s3.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		})
	}

	return s3.NewFromConfig(awsCfg, clientOpts...)
}

func NewS3Signer(client *s3.Client, expiry time.Duration) *S3Signer {
	return &S3Signer{presigner: s3.NewPresignClient(client), expiry: expiry}
}

func (s *S3Signer) Sign(ctx context.Context, req Request) (string, error) {
	if req.Method != "PUT" {
		return "", fmt.Errorf("unsupported sign method %q", req.Method)
	}
	out, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(req.Bucket),
		Key:         aws.String(req.ObjectName),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return out.URL, nil
}
