package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/stocksuperhero/dashboard/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3LogoResolver presigns GET URLs for logos kept in a private bucket
type S3LogoResolver struct {
	bucket   string
	prefix   string
	expiry   time.Duration
	s3Client *s3.S3
}

// NewS3LogoResolver creates a new S3LogoResolver.
// Static credentials are used when configured, otherwise the default AWS chain.
func NewS3LogoResolver(cfg config.StorageConfig) (*S3LogoResolver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage.bucket is required for s3 logos")
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &S3LogoResolver{
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		expiry:   expiry,
		s3Client: s3.New(sess),
	}, nil
}

// URL presigns a GET for the symbol's logo object. Presigning is local; no request is sent.
func (s *S3LogoResolver) URL(ctx context.Context, symbol string) (string, error) {
	if symbol == "" {
		return "", errEmptySymbol
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(logoKey(s.prefix, symbol)),
	})
	req.SetContext(ctx)

	url, err := req.Presign(s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign logo for %s: %w", symbol, err)
	}
	return url, nil
}
