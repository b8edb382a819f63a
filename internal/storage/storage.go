package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the blob storage collaborator for uploaded evidence
// files. Implementations are S3-compatible object stores and must rely on
// streaming I/O only; no local disk.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is the object store the verification workflow writes evidence
// files to. Safe for concurrent use.
type Storage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the
	// object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
