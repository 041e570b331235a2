package domain

import (
	"context"
	"io"
)

// StoredObject is an object read back from the bucket
type StoredObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64 // -1 when the store did not report a length
}

// ObjectStore is the key → bytes indirection behind the asset proxy
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*StoredObject, error)
}

// AssetUpload is one file submitted to the upload endpoint
type AssetUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Namespace   string
}

type AssetUsecase interface {
	// Upload stores the file and returns its proxy path
	Upload(ctx context.Context, upload *AssetUpload) (string, error)
	Fetch(ctx context.Context, key string) (*StoredObject, error)
}
