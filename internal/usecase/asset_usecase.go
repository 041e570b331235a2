package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/logger"
	"link1t-backend/pkg/security"
	"link1t-backend/pkg/security/antivirus"
)

const (
	// MaxAssetSize is 4.5 MiB; a file of exactly this size is accepted
	MaxAssetSize int64 = 4718592

	// AssetProxyPrefix is the public path that resolves stored keys
	AssetProxyPrefix = "/asset-proxy/"

	defaultNamespace   = "uploads"
	defaultAssetType   = "image/jpeg"
	msgImageNotFound   = "Image not found"
	msgFileTooLarge    = "File too large. Maximum size is 4.5MB"
	msgNoFileProvided  = "No file provided"
	msgInvalidImage    = "File is not a valid image"
	msgUploadFailed    = "Failed to upload file"
	msgInfected        = "File rejected by malware scan"
	msgScanUnavailable = "File scanning temporarily unavailable"
	fallbackAssetName  = "file"
	namespaceMaxLength = 64
)

var (
	filenameUnsafeChars  = regexp.MustCompile(`[^A-Za-z0-9.-]`)
	namespaceUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// ErrAssetTooLarge is wrapped by upload errors for oversized files
var ErrAssetTooLarge = errors.New("asset exceeds size limit")

// ErrAssetInfected is wrapped by upload errors for files the scanner flagged
var ErrAssetInfected = errors.New("asset failed malware scan")

type assetUsecase struct {
	store   domain.ObjectStore
	now     func() time.Time
	scanner antivirus.Scanner
}

type AssetOption func(*assetUsecase)

// WithScanner scans every upload before it is stored. Scan errors fail closed.
func WithScanner(s antivirus.Scanner) AssetOption {
	return func(uc *assetUsecase) { uc.scanner = s }
}

// NewAssetUsecase builds the upload/proxy usecase. A nil clock means time.Now.
func NewAssetUsecase(store domain.ObjectStore, now func() time.Time, opts ...AssetOption) domain.AssetUsecase {
	if now == nil {
		now = time.Now
	}
	uc := &assetUsecase{store: store, now: now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *assetUsecase) Upload(ctx context.Context, upload *domain.AssetUpload) (string, error) {
	if upload == nil || upload.Body == nil {
		return "", apperror.BadRequest(msgNoFileProvided)
	}
	if upload.Size > MaxAssetSize {
		return "", apperror.New(http.StatusBadRequest, apperror.CodeBadRequest, msgFileTooLarge, ErrAssetTooLarge)
	}

	// Size from the multipart header can lie; read one byte past the limit to be sure
	data, err := io.ReadAll(io.LimitReader(upload.Body, MaxAssetSize+1))
	if err != nil {
		return "", apperror.BadRequest("Failed to read file")
	}
	if int64(len(data)) > MaxAssetSize {
		return "", apperror.New(http.StatusBadRequest, apperror.CodeBadRequest, msgFileTooLarge, ErrAssetTooLarge)
	}
	if len(data) == 0 {
		return "", apperror.BadRequest(msgNoFileProvided)
	}

	contentType := strings.TrimSpace(upload.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if security.IsImageContentType(contentType) {
		if _, err := security.ValidateImage(data); err != nil {
			return "", apperror.New(http.StatusBadRequest, apperror.CodeBadRequest, msgInvalidImage, err)
		}
	}

	if uc.scanner != nil {
		res := uc.scanner.Scan(ctx, upload.Filename, data)
		if res.Error != nil {
			return "", apperror.Unavailable(msgScanUnavailable, res.Error)
		}
		if res.Infected {
			logger.Log.WarnContext(ctx, "upload flagged by scanner", "scanner", res.ScannerName, "threat", res.ThreatName)
			return "", apperror.New(http.StatusBadRequest, apperror.CodeBadRequest, msgInfected, fmt.Errorf("%w: %s", ErrAssetInfected, res.ThreatName))
		}
	}

	key := AssetKey(upload.Namespace, upload.Filename, uc.now())
	if err := uc.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", apperror.InternalMessage(msgUploadFailed, err)
	}

	return AssetProxyPrefix + key, nil
}

// Fetch collapses every failure into NotFound; the proxy does not tell
// a missing key from a storage error.
func (uc *assetUsecase) Fetch(ctx context.Context, key string) (*domain.StoredObject, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return nil, apperror.NotFound(msgImageNotFound)
	}

	obj, err := uc.store.Get(ctx, key)
	if err != nil {
		logger.Log.DebugContext(ctx, "asset fetch failed", "key", key, "error", err)
		return nil, apperror.New(http.StatusNotFound, apperror.CodeNotFound, msgImageNotFound, err)
	}
	if obj.ContentType == "" {
		obj.ContentType = defaultAssetType
	}
	return obj, nil
}

// AssetKey builds "{namespace}/{unix-millis}-{filename}" with both parts sanitized
func AssetKey(namespace, filename string, at time.Time) string {
	ns := collapseDots(namespaceUnsafeChars.ReplaceAllString(namespace, ""))
	ns = strings.Trim(ns, ".")
	if len(ns) > namespaceMaxLength {
		ns = ns[:namespaceMaxLength]
	}
	if ns == "" {
		ns = defaultNamespace
	}

	name := collapseDots(filenameUnsafeChars.ReplaceAllString(filename, ""))
	if strings.Trim(name, ".") == "" {
		name = fallbackAssetName
	}

	return fmt.Sprintf("%s/%d-%s", ns, at.UnixMilli(), name)
}

// collapseDots keeps ".." out of keys, which the proxy refuses to resolve
func collapseDots(s string) string {
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", ".")
	}
	return s
}
