// Package assets stores visit artifacts (photos, signatures) in S3
// compatible object storage. Uploads are replayable: a failed upload is
// queued in the outbox and retried by reconciliation with the same object
// key.
package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores one object under key.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

// S3Uploader implements Uploader against an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// S3Config carries the bucket coordinates. Empty AccessKey falls back to the
// ambient AWS credential chain.
type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Uploader builds the S3 client from cfg.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &S3Uploader{client: s3.NewFromConfig(awsCfg), bucket: cfg.Bucket}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}
