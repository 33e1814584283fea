package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/objstore"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

// MaxUploadSize is the largest accepted upload, 50 MiB.
const MaxUploadSize int64 = 50 << 20

var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

type uploadService struct {
	store objstore.Store

	now    func() time.Time
	logger *logger.Logger
}

func NewUploadService(store objstore.Store, logger *logger.Logger) UploadService {
	return &uploadService{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// Upload stores an image or PDF under a key of the form
// "<unix-ms>-<uuid><ext>" and returns its public URL.
func (s *uploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (models.UploadedFile, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	defaultExt, ok := allowedUploadTypes[contentType]
	if !ok {
		return models.UploadedFile{}, ErrUnsupportedFileType
	}
	if size > MaxUploadSize {
		return models.UploadedFile{}, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 5 {
		ext = defaultExt
	}
	key := utils.ObjectKey(s.now(), ext)

	url, err := s.store.Put(ctx, key, r, size, contentType)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*uploadService.Upload").Str("key", key).Msg("failed to store upload")
		return models.UploadedFile{}, fmt.Errorf("error storing upload: %w", err)
	}

	return models.UploadedFile{URL: url, Filename: key, MimeType: contentType}, nil
}
