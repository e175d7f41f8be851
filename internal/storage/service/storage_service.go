package service

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUploadFailed = errors.New("upload failed")
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// ObjectStore streams a payload into the object store and returns the
// public download URL.
type ObjectStore interface {
	Upload(ctx context.Context, buf []byte, uid, mimeType, folder string) (string, error)
}

// StorageService validates uploads and delegates the write to the store.
// The whole payload is buffered in memory for the duration of the write,
// so the size cap is enforced here before the store is touched.
type StorageService struct {
	store    ObjectStore
	maxBytes int64
}

func NewStorageService(store ObjectStore, maxBytes int64) *StorageService {
	return &StorageService{store: store, maxBytes: maxBytes}
}

// Upload stores the buffer under the given user and folder and returns the
// download URL.
func (s *StorageService) Upload(ctx context.Context, buf []byte, uid, mimeType, folder string) (string, error) {
	if uid == "" {
		return "", fmt.Errorf("uid is required")
	}
	if len(buf) == 0 {
		return "", ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(buf)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	url, err := s.store.Upload(ctx, buf, uid, mimeType, folder)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return url, nil
}
