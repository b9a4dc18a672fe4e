package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

type S3Bucket struct {
	uploader *s3manager.Uploader
	name     string
	urlBase  string
}

func NewS3Bucket(name, region, accessKeyId, secretAccessKey string) (*S3Bucket, error) {
	awsCfg := aws.NewConfig()
	if region != "" {
		awsCfg = awsCfg.WithRegion(region)
	}
	if accessKeyId != "" && secretAccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(accessKeyId, secretAccessKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %v", err)
	}

	return NewS3BucketWithSession(sess, name), nil
}

func NewS3BucketWithSession(sess *session.Session, name string) *S3Bucket {
	return &S3Bucket{
		uploader: s3manager.NewUploader(sess),
		name:     name,
		urlBase:  fmt.Sprintf("https://%s.s3.amazonaws.com", name),
	}
}

func (b *S3Bucket) Upload(ctx context.Context, key string, obj io.Reader, contentType string) (string, error) {
	zap.L().Debug("uploading to s3", zap.String("bucket", b.name), zap.String("key", key))

	input := &s3manager.UploadInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   obj,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := b.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("error uploading %s to s3: %v", key, err)
	}

	return b.urlBase + "/" + key, nil
}

func (b *S3Bucket) Close() error { return nil }
