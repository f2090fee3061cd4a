package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStore keeps document payloads in a MinIO bucket under opaque object
// keys.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// ConnectMinio connects to MinIO and makes sure the bucket exists with
// versioning enabled.
func ConnectMinio(endpoint, accessKey, secretKey, bucket string, log *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize MinIO client: %w", err)
	}
	log.Info("MinIO client initialized", zap.String("endpoint", endpoint))

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.Info("Bucket created", zap.String("bucket", bucket))
	}
	if err := client.EnableVersioning(ctx, bucket); err != nil {
		log.Warn("Failed to enable bucket versioning", zap.String("bucket", bucket), zap.Error(err))
	}

	return &MinioStore{client: client, bucket: bucket, logger: log}, nil
}

func (s *MinioStore) Put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ref := uuid.New().String()
	_, err := s.client.PutObject(ctx, s.bucket, ref, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("Failed to upload payload", zap.String("ref", ref), zap.Error(err))
		return "", err
	}
	s.logger.Info("Payload uploaded",
		zap.String("ref", ref),
		zap.Int64("size", size),
		zap.String("contentType", contentType),
	)
	return ref, nil
}

func (s *MinioStore) Get(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	object, err := s.client.GetObject(ctx, s.bucket, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	stat, err := s.client.StatObject(ctx, s.bucket, ref, minio.StatObjectOptions{})
	if err != nil {
		object.Close()
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return object, stat.ContentType, nil
}

func (s *MinioStore) Remove(ctx context.Context, ref string) error {
	return s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{})
}
