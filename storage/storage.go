// Package storage keeps uploaded documents on the local disk or in S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Storage stores uploaded documents
type Storage interface {
	// Upload stores a document and returns its storage path
	Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download opens a stored document
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a stored document. Missing documents are not an error.
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string // S3-compatible endpoint (MinIO etc.), empty for AWS
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a storage backend from configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

const keyPrefix = "contracts"

// generateStoragePath builds contracts/<2 hex>/<uuid>_<name><ext>
func generateStoragePath(fileID uuid.UUID, filename string) string {
	filename = filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(filename))
	base := sanitizeName(strings.TrimSuffix(filename, filepath.Ext(filename)))

	id := fileID.String()
	name := id + ext
	if base != "" {
		name = id + "_" + base + ext
	}
	return path.Join(keyPrefix, id[:2], name)
}

// sanitizeName keeps letters, digits, dashes and underscores
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '.':
			b.WriteRune('_')
		}
	}
	out := b.String()
	if len([]rune(out)) > 64 {
		out = string([]rune(out)[:64])
	}
	return out
}

// ContentType determines content type from filename
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
