package media

import (
	"context"
	"fmt"
	"io"
	"os"

	gcs "cloud.google.com/go/storage"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/pkg/errors"
)

// BucketStorage stores objects in a Google Cloud Storage bucket, which is what
// Firebase Storage hands out
type BucketStorage struct {
	bucket *gcs.BucketHandle
	name   string
	probe  Prober
}

func NewBucketStorage(bucket *gcs.BucketHandle, name string, probe Prober) *BucketStorage {
	return &BucketStorage{bucket: bucket, name: name, probe: probe}
}

// Upload streams the local file into the bucket
func (s *BucketStorage) Upload(ctx context.Context, localPath string, folder Folder) (*Upload, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer f.Close()

	key := objectKey(folder, localPath)
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType(localPath)

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return nil, errors.Wrapf(err, "write object %s", key)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(err, "finalize object %s", key)
	}

	asset := models.Asset{
		URL:       fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, key),
		StorageID: key,
	}
	return describe(ctx, s.probe, localPath, folder, asset), nil
}

func (s *BucketStorage) Delete(ctx context.Context, storageID string) error {
	if err := s.bucket.Object(storageID).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ErrObjectNotFound
		}
		return errors.Wrapf(err, "delete object %s", storageID)
	}
	return nil
}
