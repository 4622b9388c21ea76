// Package media uploads and deletes video and thumbnail objects in external
// object storage.
package media

import (
	"context"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Folder groups objects by purpose
type Folder string

const (
	FolderVideos     Folder = "videos"
	FolderThumbnails Folder = "thumbnails"
)

var (
	// ErrDisabled is returned by Disabled for every call.
	ErrDisabled = errors.New("object storage is not configured")
	// ErrObjectNotFound is returned by Delete when the object does not exist.
	ErrObjectNotFound = errors.New("object not found")
)

// Upload is the result of storing a local file
type Upload struct {
	Asset    models.Asset
	Duration float64 // seconds; set for files in FolderVideos when a prober is configured
}

// Storage is the object storage collaborator
type Storage interface {
	Upload(ctx context.Context, localPath string, folder Folder) (*Upload, error)
	Delete(ctx context.Context, storageID string) error
}

// Disabled is used when no storage backend is configured
type Disabled struct{}

func (Disabled) Upload(context.Context, string, Folder) (*Upload, error) { return nil, ErrDisabled }
func (Disabled) Delete(context.Context, string) error                    { return ErrDisabled }

// objectKey builds a collision-free key that keeps the file extension
func objectKey(folder Folder, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return path.Join(string(folder), uuid.NewString()+ext)
}

func contentType(localPath string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// describe fills in the duration of video uploads. A failed probe is logged and leaves it at zero.
func describe(ctx context.Context, probe Prober, localPath string, folder Folder, asset models.Asset) *Upload {
	up := &Upload{Asset: asset}
	if folder != FolderVideos || probe == nil {
		return up
	}
	d, err := probe(localPath)
	if err != nil {
		logger.From(ctx).WithError(err).WithField("storage_id", asset.StorageID).Warn("could not probe video duration")
		return up
	}
	up.Duration = d
	return up
}
