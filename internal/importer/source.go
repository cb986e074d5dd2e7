package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config selects the S3-compatible service used for s3:// sources.
type S3Config struct {
	Region   string
	Endpoint string // non-empty enables path-style addressing (MinIO and similar)
}

// S3Source reads import files from an S3-compatible bucket.
type S3Source struct {
	client *s3.Client
}

// NewS3Source creates an S3 source. If endpoint is non-empty,
// path-style addressing is enabled.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Source{client: s3.NewFromConfig(awsCfg, s3opts...)}, nil
}

// Open streams the object at bucket/key. The caller closes the body.
func (s *S3Source) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object s3://%s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// ParseS3URL splits "s3://bucket/key" into its parts. ok is false for
// anything that is not an s3 URL with both parts present.
func ParseS3URL(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// OpenSource opens a local path or an s3://bucket/key location.
func OpenSource(ctx context.Context, location string, cfg S3Config) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "s3://") {
		bucket, key, ok := ParseS3URL(location)
		if !ok {
			return nil, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", location)
		}
		src, err := NewS3Source(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return src.Open(ctx, bucket, key)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	return f, nil
}
