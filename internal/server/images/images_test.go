package images

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/logging"
	sc "github.com/dmitrijs2005/diary/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(bucket string) *Service {
	return NewService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       bucket,
	}, logging.Nop{})
}

func TestGetRandomStorageKey(t *testing.T) {
	k1 := GetRandomStorageKey()
	k2 := GetRandomStorageKey()

	assert.True(t, strings.HasPrefix(k1, "diary/"))
	assert.NotEqual(t, k1, k2)
}

func TestPresign_Disabled(t *testing.T) {
	s := newTestService("")
	ctx := context.Background()

	assert.False(t, s.Enabled())

	_, _, err := s.PresignUpload(ctx)
	assert.ErrorIs(t, err, common.ErrorStorageDisabled)

	_, err = s.PresignDownload(ctx, "k")
	assert.ErrorIs(t, err, common.ErrorStorageDisabled)
}

func TestPresignDownload_EmptyKey(t *testing.T) {
	s := newTestService("photos")

	_, err := s.PresignDownload(context.Background(), " ")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestPresign_RealSignerIncludesBucketAndKey(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent/credentials")
	t.Setenv("AWS_PROFILE", "")

	s := newTestService("photos")
	ctx := context.Background()

	key, putURL, err := s.PresignUpload(ctx)
	require.NoError(t, err)
	assert.Contains(t, putURL, "127.0.0.1:9000/photos/"+key)
	assert.Contains(t, putURL, "X-Amz-Signature=")
	assert.Contains(t, putURL, "X-Amz-Expires=900")

	getURL, err := s.PresignDownload(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, getURL, "/photos/"+key)
}

func TestGetPresignClient_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}

	var seen s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&seen)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	pc, err := newTestService("photos").getPresignClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pc)
	require.NotNil(t, seen.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *seen.BaseEndpoint)
	assert.True(t, seen.UsePathStyle)
}

func TestPresign_ErrorsBecomeInternal(t *testing.T) {
	t.Run("config load", func(t *testing.T) {
		orig := loadDefaultAWSConfig
		t.Cleanup(func() { loadDefaultAWSConfig = orig })
		loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("no config")
		}

		s := newTestService("photos")
		_, _, err := s.PresignUpload(context.Background())
		assert.ErrorIs(t, err, common.ErrorInternal)
		_, err = s.PresignDownload(context.Background(), "k")
		assert.ErrorIs(t, err, common.ErrorInternal)
	})

	t.Run("presign", func(t *testing.T) {
		origPut, origGet := presignPutObject, presignGetObject
		t.Cleanup(func() {
			presignPutObject = origPut
			presignGetObject = origGet
		})
		presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
			return nil, errors.New("put fail")
		}
		presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
			return nil, errors.New("get fail")
		}

		s := newTestService("photos")
		_, _, err := s.PresignUpload(context.Background())
		assert.ErrorIs(t, err, common.ErrorInternal)
		_, err = s.PresignDownload(context.Background(), "k")
		assert.ErrorIs(t, err, common.ErrorInternal)
	})
}
