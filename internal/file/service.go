package file

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/storage"
)

const defaultURLTTL = 15 * time.Minute

type Service struct {
	repo   Repository
	store  storage.ObjectStore
	logger *log.Logger
}

func NewService(repo Repository, store storage.ObjectStore, logger *log.Logger) *Service {
	return &Service{repo: repo, store: store, logger: logger}
}

// Upload writes the object to storage first and records metadata after. When
// the metadata insert fails the object is removed again, so storage never
// holds blobs the database does not know about.
func (s *Service) Upload(ctx context.Context, name, contentType string, body io.Reader) (*File, error) {
	if name == "" {
		return nil, apperr.Validation("file name is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now().UTC()
	f := &File{
		ID:          uuid.NewString(),
		Name:        name,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.Key = f.ID + filepath.Ext(name)

	if err := s.store.Put(ctx, f.Key, contentType, body); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if delErr := s.store.Delete(ctx, f.Key); delErr != nil {
			s.logger.Printf("remove object %s after failed insert: %v", f.Key, delErr)
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) URL(ctx context.Context, id string) (string, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignedURL(ctx, f.Key, defaultURLTTL)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		if delErr := s.store.Delete(ctx, f.Key); delErr != nil {
			s.logger.Printf("remove object %s of deleted file: %v", f.Key, delErr)
		}
	}
	return deleted, nil
}
