package services

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/media"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

// fakeStorage keeps object keys in memory and can be told to fail
type fakeStorage struct {
	mu          sync.Mutex
	objects     map[string]bool
	uploadErr   map[media.Folder]error
	deleteErr   map[string]error
	uploadCount int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:   make(map[string]bool),
		uploadErr: make(map[media.Folder]error),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeStorage) Upload(_ context.Context, _ string, folder media.Folder) (*media.Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.uploadErr[folder]; err != nil {
		return nil, err
	}
	f.uploadCount++
	key := string(folder) + "/" + ids.New()
	f.objects[key] = true

	up := &media.Upload{Asset: models.Asset{URL: "https://cdn.example/" + key, StorageID: key}}
	if folder == media.FolderVideos {
		up.Duration = 42
	}
	return up, nil
}

func (f *fakeStorage) Delete(_ context.Context, storageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.deleteErr[storageID]; err != nil {
		return err
	}
	if !f.objects[storageID] {
		return media.ErrObjectNotFound
	}
	delete(f.objects, storageID)
	return nil
}

func (f *fakeStorage) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}
	return out
}

type fixture struct {
	ctx     context.Context
	mem     *repositories.MemoryStore
	storage *fakeStorage
	svc     *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := repositories.NewMemoryStore()
	storage := newFakeStorage()
	return &fixture{
		ctx:     context.Background(),
		mem:     mem,
		storage: storage,
		svc:     New(mem.Repositories(), storage, nil),
	}
}

func (f *fixture) user(t *testing.T, username string) string {
	t.Helper()
	u := &models.User{Username: username, FullName: username + " Doe", AvatarURL: "https://cdn.example/" + username + ".png"}
	require.NoError(t, f.mem.CreateUser(f.ctx, u))
	return u.ID
}

func (f *fixture) video(t *testing.T, ownerID, title string) *models.Video {
	t.Helper()
	v := &models.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		VideoFile:   models.Asset{URL: "https://cdn.example/v.mp4", StorageID: "videos/" + title},
		IsPublished: true,
	}
	require.NoError(t, f.mem.CreateVideo(f.ctx, v))
	return v
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, "got %v", err)
}
