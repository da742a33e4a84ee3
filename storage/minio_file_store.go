package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/Aashish23092/curriculum-ats/logger"
)

// MinIOConfig holds the object store connection settings.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Location        string
	PresignExpiry   time.Duration
}

// MinIOFileStore saves uploads to an S3-compatible bucket under
// <userId>/<name> and hands out presigned download URLs.
type MinIOFileStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

var _ FileStore = (*MinIOFileStore)(nil)

// NewMinIOFileStore connects and makes sure the bucket exists.
func NewMinIOFileStore(ctx context.Context, cfg MinIOConfig) (*MinIOFileStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour // longest expiry S3 signatures allow
	}

	s := &MinIOFileStore{client: client, bucket: cfg.Bucket, expiry: expiry}
	if err := s.ensureBucket(ctx, cfg.Location); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIOFileStore) ensureBucket(ctx context.Context, location string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio: check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("minio: create bucket %s: %w", s.bucket, err)
	}
	logger.Info().Str("bucket", s.bucket).Msg("minio bucket created")
	return nil
}

func (s *MinIOFileStore) Save(ctx context.Context, userID, name string, data []byte, contentType string) (StoredFile, error) {
	objectName := path.Join(userID, name)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return StoredFile{}, fmt.Errorf("minio: upload %s: %w", objectName, err)
	}

	stored := StoredFile{Backend: dto.StorageBackendMinIO, Path: objectName}
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.expiry, nil)
	if err != nil {
		// The object is stored; callers can still resolve it by path.
		logger.Warn().Err(err).Str("object", objectName).Msg("minio presign failed")
		return stored, nil
	}
	stored.URL = url.String()
	return stored, nil
}

func (s *MinIOFileStore) Delete(ctx context.Context, file StoredFile) error {
	if file.Path == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, file.Path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio: delete %s: %w", file.Path, err)
	}
	return nil
}
