// Package objstore stores uploaded files either in a MinIO/S3 bucket or,
// when no endpoint is configured, in a local directory served by the HTTP
// server.
package objstore

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
)

//go:generate mockgen -source=objstore.go -destination=../mock/objstore_mock.go -package=mock

// Store persists objects and returns the URL they are reachable at.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}

var (
	ErrInvalidKey     = errors.New("invalid object key")
	ErrMissingConfig  = errors.New("object storage is not configured")
	ErrObjectNotFound = errors.New("object not found")
)

// New returns a MinIO store when an endpoint is configured and a local
// directory store otherwise.
func New(ctx context.Context, cfg config.Objects, log *logger.Logger) (Store, error) {
	if cfg.Endpoint != "" {
		s, err := NewMinIO(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("using minio object storage")
		return s, nil
	}

	s, err := NewLocal(cfg.LocalDir, cfg.PublicURL)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", cfg.LocalDir).Msg("using local object storage")
	return s, nil
}

// validateKey rejects keys that could escape the bucket or directory.
func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
