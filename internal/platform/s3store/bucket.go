package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/phu024/elearning-rag-platform/internal/platform/envutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

// BucketService is the object-store boundary. Backed by any
// S3-compatible endpoint; local deployments run MinIO with path-style
// addressing.
type BucketService interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type bucketService struct {
	log     *logger.Logger
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func New(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	endpoint := envutil.GetEnv("S3_ENDPOINT", "http://localhost:9000", log)
	region := envutil.GetEnv("S3_REGION", "us-east-1", log)
	accessKey := envutil.GetEnv("S3_ACCESS_KEY", "minioadmin", log)
	secretKey := envutil.GetEnv("S3_SECRET_KEY", "minioadmin", log)
	bucket := envutil.GetEnv("S3_BUCKET_NAME", "elearning-files", log)

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	if err := ensureBucket(ctx, client, bucket); err != nil {
		return nil, fmt.Errorf("ensure bucket %q: %w", bucket, err)
	}
	serviceLog.Info("Object store ready", "bucket", bucket, "endpoint", endpoint)

	return &bucketService{
		log:     serviceLog,
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

func ensureBucket(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}
	var notFound *s3types.NotFound
	if !errors.As(err, &notFound) {
		return err
	}
	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return err
	}
	return nil
}

func (bs *bucketService) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}
	_, err = bs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bs.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := bs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (bs *bucketService) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := bs.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bs.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", key, err)
	}
	return req.URL, nil
}
