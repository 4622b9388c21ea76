package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Uploads spools multipart files to a scratch directory so object storage can read them from disk
type Uploads struct {
	dir string
}

// NewUploads uses dir, or the system temp directory when dir is empty
func NewUploads(dir string) *Uploads {
	return &Uploads{dir: dir}
}

// save writes the form file to disk. A missing field yields an empty path.
func (u *Uploads) save(c echo.Context, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apperr.ValidationFailed("invalid %s upload", field)
	}

	src, err := header.Open()
	if err != nil {
		return "", apperr.StoreFailure(err, "failed to read upload")
	}
	defer src.Close()

	dst, err := os.CreateTemp(u.dir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", apperr.StoreFailure(err, "failed to spool upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		u.cleanup(c, dst.Name())
		return "", apperr.StoreFailure(err, "failed to spool upload")
	}
	return dst.Name(), nil
}

func (u *Uploads) cleanup(c echo.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.From(c.Request().Context()).WithError(err).WithField("path", p).Warn("failed to remove spooled upload")
		}
	}
}
