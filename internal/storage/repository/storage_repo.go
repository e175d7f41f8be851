package repository

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// downloadTokenKey is the provider metadata key Firebase clients use to
// authorize unauthenticated downloads.
const downloadTokenKey = "firebaseStorageDownloadTokens"

// ObjectWriterFactory opens a write stream for one object. It exists so the
// upload contract can be tested without a live bucket; GCSBucket is the
// production implementation.
type ObjectWriterFactory interface {
	NewWriter(ctx context.Context, key, contentType string, metadata map[string]string) io.WriteCloser
}

// GCSBucket adapts a Cloud Storage bucket handle to ObjectWriterFactory.
type GCSBucket struct {
	bucket *storage.BucketHandle
}

func NewGCSBucket(bucket *storage.BucketHandle) GCSBucket {
	return GCSBucket{bucket: bucket}
}

func (b GCSBucket) NewWriter(ctx context.Context, key, contentType string, metadata map[string]string) io.WriteCloser {
	w := b.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = metadata
	return w
}

// StorageRepository streams payloads into the bucket and mints the public
// download URL carrying the capability token.
type StorageRepository struct {
	objects    ObjectWriterFactory
	bucketName string

	now      func() time.Time
	newToken func() string
}

func NewStorageRepository(objects ObjectWriterFactory, bucketName string) *StorageRepository {
	return &StorageRepository{
		objects:    objects,
		bucketName: bucketName,
		now:        time.Now,
		newToken:   uuid.NewString,
	}
}

// Upload writes the full buffer to folder/uid-<unixmillis> tagged with a
// fresh capability token, and returns the download URL. The URL is composed
// only after the writer closes cleanly; a failed or partial write never
// yields a URL.
func (r *StorageRepository) Upload(ctx context.Context, buf []byte, uid, mimeType, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s-%d", folder, uid, r.now().UnixMilli())
	token := r.newToken()

	w := r.objects.NewWriter(ctx, key, mimeType, map[string]string{
		downloadTokenKey: token,
	})

	if _, err := w.Write(buf); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish object %q: %w", key, err)
	}

	return DownloadURL(r.bucketName, key, token), nil
}

// DownloadURL composes the public media URL for an object. The capability
// token is the sole access control; anyone holding the URL can read the
// object.
func DownloadURL(bucket, key, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(key), token)
}
