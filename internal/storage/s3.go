// Package storage cung cấp uploader file lên S3 cho file minh chứng của influencer.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"kol_market/config"
)

// Uploader nhận file stream và trả về URL công khai của object đã upload
type Uploader interface {
	Upload(ctx context.Context, folder string, filename string, contentType string, body io.Reader) (string, error)
}

// S3Uploader triển khai Uploader trên AWS S3
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Uploader khởi tạo S3 client từ config.
// Trả về (nil, nil) khi thiếu cấu hình AWS — caller bỏ qua việc upload.
func NewS3Uploader(c *config.Configuration) (*S3Uploader, error) {
	if c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "" || c.AWSBucket == "" {
		return nil, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(c.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AWSAccessKeyID,
			c.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: c.AWSBucket,
		region: c.AWSRegion,
	}, nil
}

// Upload đẩy một file lên S3 và trả về URL công khai.
// Key được sinh duy nhất theo uuid để tránh ghi đè file trùng tên.
func (u *S3Uploader) Upload(ctx context.Context, folder string, filename string, contentType string, body io.Reader) (string, error) {
	ext := path.Ext(filename)
	key := path.Join(folder, uuid.NewString()+ext)

	uploader := manager.NewUploader(u.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, strings.TrimPrefix(key, "/")), nil
}
