package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/domain"
)

const maxMediaSize = 5 * 1024 * 1024 // 5MB

// MediaService validates uploaded files, hands the bytes to the file store,
// and returns the reference URL clients use to fetch them back.
type MediaService struct {
	files   domain.FileStore
	baseURL string
}

// NewMediaService creates a new MediaService. baseURL prefixes the returned
// reference URLs and may be empty for host-relative references.
func NewMediaService(files domain.FileStore, baseURL string) *MediaService {
	return &MediaService{files: files, baseURL: baseURL}
}

// Store validates and persists an upload under the given folder, returning
// its reference URL. Storage failures surface as domain.ErrUpstream so the
// calling operation aborts rather than persisting a dangling reference.
func (s *MediaService) Store(ctx context.Context, up Upload, folder string) (string, error) {
	if up.ContentType != "image/jpeg" && up.ContentType != "image/png" {
		return "", fmt.Errorf("%w: only JPEG and PNG images are accepted", domain.ErrInvalidInput)
	}
	if len(up.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(up.Data) > maxMediaSize {
		return "", fmt.Errorf("%w: file exceeds 5MB limit", domain.ErrInvalidInput)
	}

	key := folder + "/" + uuid.NewString()
	if err := s.files.Save(ctx, key, up.Data); err != nil {
		return "", fmt.Errorf("%w: store media: %v", domain.ErrUpstream, err)
	}

	return s.baseURL + "/api/media/" + key, nil
}

// Get returns the stored bytes for a storage key.
func (s *MediaService) Get(ctx context.Context, key string) ([]byte, error) {
	return s.files.Get(ctx, key)
}
