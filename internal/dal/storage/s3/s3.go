package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// Storage uploads receipts to an S3 bucket.
type Storage struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// MustNewStorage creates an S3 storage from configuration. Credentials come
// from the default AWS chain (env, shared config, instance role).
func MustNewStorage() *Storage {
	bucket := viper.GetString("storage.s3.bucket")
	if bucket == "" {
		panic("storage.s3.bucket is not set in config")
	}
	region := viper.GetString("storage.s3.region")

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		panic(fmt.Sprintf("Failed to load AWS config: %v", err))
	}

	client := s3.NewFromConfig(cfg)

	return &Storage{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
	}
}

// Upload stores the file under receipts/ and returns its object URL.
func (s *Storage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := fmt.Sprintf("receipts/%d-%s", time.Now().UnixMilli(), filepath.Base(filename))

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt to s3: %w", err)
	}

	if result.Location != "" {
		return result.Location, nil
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}
