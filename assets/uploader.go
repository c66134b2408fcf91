package assets

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/eventpilot/backend/config"
	"github.com/eventpilot/backend/errs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultFolder = "eventpilot"

var unsafeFolderChars = regexp.MustCompile(`[^a-zA-Z0-9_\-/]+`)

// Asset is a stored image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader stores validated image bytes with an external provider.
type Uploader interface {
	Upload(ctx context.Context, folder string, data []byte, contentType string) (Asset, error)
}

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Uploader builds a client from the default AWS credential chain. A
// custom endpoint switches to path style addressing for S3 compatible hosts.
func NewS3Uploader(ctx context.Context, settings config.UploadSettings) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3UploaderWithClient(client, settings.Bucket, settings.AssetBaseURL), nil
}

func NewS3UploaderWithClient(client ObjectPutter, bucket, baseURL string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With().Str("component", "s3Uploader").Logger(),
	}
}

// CleanFolder keeps folder names to a safe key prefix.
func CleanFolder(folder string) string {
	folder = unsafeFolderChars.ReplaceAllString(strings.TrimSpace(folder), "")
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return DefaultFolder
	}
	return folder
}

func (u *S3Uploader) Upload(ctx context.Context, folder string, data []byte, contentType string) (Asset, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return Asset{}, errs.NewUnsupportedMediaTypeError(contentType, AllowedTypes)
	}

	key := fmt.Sprintf("%s/%s%s", CleanFolder(folder), uuid.NewString(), ext)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return Asset{}, errs.NewUpstreamError("image host", err)
	}

	u.logger.Info().Str("key", key).Int("bytes", len(data)).Msg("image uploaded")
	return Asset{URL: u.baseURL + "/" + key, PublicID: key}, nil
}
