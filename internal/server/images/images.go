// Package images hands out presigned S3 URLs so clients can upload and fetch
// diary pictures directly from object storage.
package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/logging"
	sc "github.com/dmitrijs2005/diary/internal/server/config"
	"github.com/google/uuid"
)

const presignExpires = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type Service struct {
	config *sc.Config
	logger logging.Logger
}

func NewService(config *sc.Config, l logging.Logger) *Service {
	return &Service{
		config: config,
		logger: l.With("module", "images"),
	}
}

// Enabled reports whether an S3 bucket is configured.
func (s *Service) Enabled() bool {
	return s.config.S3Bucket != ""
}

// GetRandomStorageKey returns a fresh object key grouped by upload date.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("diary/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		// MinIO serves buckets under the path, not as subdomains.
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload allocates a new key and returns it with a presigned PUT URL.
func (s *Service) PresignUpload(ctx context.Context) (string, string, error) {
	if !s.Enabled() {
		return "", "", common.ErrorStorageDisabled
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", s.internal(ctx, "building presign client", err)
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", "", s.internal(ctx, "presigning put", err)
	}

	return key, req.URL, nil
}

// PresignDownload returns a presigned GET URL for key.
func (s *Service) PresignDownload(ctx context.Context, key string) (string, error) {
	if !s.Enabled() {
		return "", common.ErrorStorageDisabled
	}
	if strings.TrimSpace(key) == "" {
		return "", common.ErrorValidation
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", s.internal(ctx, "building presign client", err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", s.internal(ctx, "presigning get", err)
	}

	return req.URL, nil
}

func (s *Service) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}
