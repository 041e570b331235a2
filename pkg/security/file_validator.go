package security

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	// Decoders registered for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrNotAnImage       = errors.New("file content is not a decodable image")
	ErrContentMismatch  = errors.New("file content does not match extension")
	ErrExtensionBlocked = errors.New("file extension not allowed")
)

// Magic byte signatures for résumé documents
var documentMagic = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
	".txt":  {},
}

// DocumentMIMETypes maps résumé extensions to the MIME type sent upstream
var DocumentMIMETypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// IsImageContentType reports whether the declared type is an image type
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// ValidateImage checks that data starts with a decodable image header.
// SVG is rejected since it is not a raster format and can carry script.
func ValidateImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	return format, nil
}

// ValidateDocument checks a résumé file. Files without an extension are accepted
// as-is; known extensions must match their magic bytes.
func ValidateDocument(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return nil
	}

	signatures, ok := documentMagic[ext]
	if !ok {
		return fmt.Errorf("%w: %s", ErrExtensionBlocked, ext)
	}
	if len(signatures) == 0 {
		return nil
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return nil
		}
	}
	return ErrContentMismatch
}

// DocumentMIMEType picks the MIME type by extension, then the declared type, then PDF
func DocumentMIMEType(filename, declared string) string {
	if mime, ok := DocumentMIMETypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mime
	}
	if declared != "" {
		return declared
	}
	return "application/pdf"
}
