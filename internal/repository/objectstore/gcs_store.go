package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"link1t-backend/internal/domain"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// objectBucket is the part of a GCS bucket the store touches
type objectBucket interface {
	NewWriter(ctx context.Context, key, contentType string) io.WriteCloser
	NewReader(ctx context.Context, key string) (*domain.StoredObject, error)
}

type bucketHandle struct {
	h *gcs.BucketHandle
}

func (b bucketHandle) NewWriter(ctx context.Context, key, contentType string) io.WriteCloser {
	w := b.h.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

func (b bucketHandle) NewReader(ctx context.Context, key string) (*domain.StoredObject, error) {
	r, err := b.h.Object(key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.StoredObject{Body: r, ContentType: r.Attrs.ContentType, Size: r.Attrs.Size}, nil
}

// GCSStore stores assets in a Google Cloud Storage bucket
type GCSStore struct {
	client *gcs.Client
	bucket objectBucket
}

// NewGCSStore uses application default credentials unless credentialsFile is set
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: c, bucket: bucketHandle{h: c.Bucket(bucket)}}, nil
}

func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Put streams body into the object. The upload is only committed by a
// successful Close; a failed copy cancels the writer's context so no
// partial object is left behind.
func (s *GCSStore) Put(ctx context.Context, key string, body io.Reader, _ int64, contentType string) error {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.bucket.NewWriter(wctx, key, contentType)
	if _, err := io.Copy(w, body); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, key string) (*domain.StoredObject, error) {
	obj, err := s.bucket.NewReader(ctx, key)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return obj, nil
}
