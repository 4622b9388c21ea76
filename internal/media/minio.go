package media

import (
	"context"
	"net/url"
	"strings"

	"github.com/anonto42/nano-tube/backend/internal/models"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// MinioStorage stores objects in a MinIO/S3 bucket
type MinioStorage struct {
	client  *mclient.Client
	bucket  string
	baseURL string
	probe   Prober
}

// NewMinioStorage connects to MinIO and checks that the bucket exists
func NewMinioStorage(ctx context.Context, cfg MinioConfig, probe Prober) (*MinioStorage, error) {
	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "check bucket")
	}
	if !exists {
		return nil, errors.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		baseURL = scheme + "://" + endpoint + "/" + cfg.Bucket
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket, baseURL: baseURL, probe: probe}, nil
}

func (s *MinioStorage) Upload(ctx context.Context, localPath string, folder Folder) (*Upload, error) {
	key := objectKey(folder, localPath)
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, mclient.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "put object %s", key)
	}

	asset := models.Asset{URL: s.baseURL + "/" + key, StorageID: key}
	return describe(ctx, s.probe, localPath, folder, asset), nil
}

func (s *MinioStorage) Delete(ctx context.Context, storageID string) error {
	if _, err := s.client.StatObject(ctx, s.bucket, storageID, mclient.StatObjectOptions{}); err != nil {
		if mclient.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrObjectNotFound
		}
		return errors.Wrapf(err, "stat object %s", storageID)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, storageID, mclient.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove object %s", storageID)
	}
	return nil
}
