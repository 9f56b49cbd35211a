package filestorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/prepsphere/backend/internal/pkg/logger"
)

// S3Config holds connection settings for an S3-compatible object store
// (AWS S3, Cloudflare R2, MinIO).
type S3Config struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	PublicURL   string // optional CDN/public base URL; presigned URLs are used when empty
	KeyPrefix   string // optional prefix applied to every object key
	DisablePath bool   // use virtual-host style addressing instead of path style
}

// IsConfigured reports whether enough settings are present to talk to a bucket.
func (c S3Config) IsConfigured() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// S3Storage stores files in an S3-compatible bucket.
type S3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	keyPrefix string
}

// NewS3Storage connects to the configured bucket and verifies it exists.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		BucketLookup: bucketLookup(cfg.DisablePath),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("Object storage connected")

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
	}, nil
}

func bucketLookup(disablePath bool) minio.BucketLookupType {
	if disablePath {
		return minio.BucketLookupDNS
	}
	return minio.BucketLookupPath
}

func (s *S3Storage) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + "/" + key
}

// Save uploads the content under the given key.
func (s *S3Storage) Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error) {
	objKey := s.objectKey(key)
	_, err := s.client.PutObject(ctx, s.bucket, objKey, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error().Err(err).Str("key", objKey).Msg("Failed to upload object")
		return "", fmt.Errorf("failed to upload object %s: %w", objKey, err)
	}

	logger.Info().Str("key", objKey).Int64("size", size).Msg("Object uploaded")
	return key, nil
}

// URL returns a link for downloading the object. With a public base URL
// configured the link is static, otherwise a presigned GET valid for
// PresignExpiry is generated.
func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	objKey := s.objectKey(key)

	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/") + "/" + objKey, nil
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objKey, PresignExpiry, url.Values{})
	if err != nil {
		logger.Error().Err(err).Str("key", objKey).Msg("Failed to presign object URL")
		return "", fmt.Errorf("failed to presign URL for %s: %w", objKey, err)
	}
	return presigned.String(), nil
}

// Delete removes the object from the bucket.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	objKey := s.objectKey(key)
	if err := s.client.RemoveObject(ctx, s.bucket, objKey, minio.RemoveObjectOptions{}); err != nil {
		logger.Error().Err(err).Str("key", objKey).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object %s: %w", objKey, err)
	}
	return nil
}
