package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const signedURLExpiry = 15 * time.Minute

type StorageService interface {
	UploadFile(ctx context.Context, file multipart.File, filename string, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	GetSignedURL(ctx context.Context, fileURL string) (string, error)
}

type S3StorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3StorageService keeps objects in one bucket and hands out s3://bucket/key references.
type S3StorageService struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3StorageService(ctx context.Context, cfg S3StorageConfig) (*S3StorageService, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3StorageService{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

func (s *S3StorageService) UploadFile(ctx context.Context, file multipart.File, filename string, folder string) (string, error) {
	key := path.Join(strings.Trim(folder, "/"), filename)

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(http.DetectContentType(content)),
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	return objectURL(s.bucket, key), nil
}

func (s *S3StorageService) DeleteFile(ctx context.Context, fileURL string) error {
	key, err := objectKeyFromURL(s.bucket, fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *S3StorageService) GetSignedURL(ctx context.Context, fileURL string) (string, error) {
	key, err := objectKeyFromURL(s.bucket, fileURL)
	if err != nil {
		return "", err
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(signedURLExpiry))
	if err != nil {
		return "", fmt.Errorf("get signed url: %w", err)
	}
	return req.URL, nil
}

func objectURL(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}

// IsStoredObject reports whether the reference points into object storage
// rather than a static asset path.
func IsStoredObject(ref string) bool {
	return strings.HasPrefix(ref, "s3://")
}

func objectKeyFromURL(bucket, fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	if parsed.Scheme != "s3" || parsed.Host != bucket {
		return "", fmt.Errorf("file url does not belong to configured bucket")
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("file url has no object key")
	}
	return key, nil
}
