package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"unit-loader/core/storage"
	"unit-loader/core/unit"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// StorageFetcher reads unit resources from an object storage bucket.
type StorageFetcher struct {
	client storage.Client
	bucket string
}

// NewStorageFetcher creates a fetcher reading objects from bucket.
func NewStorageFetcher(client storage.Client, bucket string) *StorageFetcher {
	return &StorageFetcher{client: client, bucket: bucket}
}

// Fetch downloads the object named by locator.
func (f *StorageFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	obj, err := f.client.GetObject(ctx, f.bucket, locator, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyStorageError(f.bucket, locator, err)
	}
	defer obj.Close()

	// minio resolves the object lazily, so a missing key surfaces on read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, classifyStorageError(f.bucket, locator, err)
	}
	return data, nil
}

func classifyStorageError(bucket, locator string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: object %s/%s: %w", unit.ErrNotFound, bucket, locator, err)
	}
	return fmt.Errorf("%w: object %s/%s: %w", unit.ErrTransport, bucket, locator, err)
}

// FSFetcher reads unit resources from a filesystem.
type FSFetcher struct {
	fs afero.Fs
}

// NewFSFetcher creates a fetcher reading files from fsys.
func NewFSFetcher(fsys afero.Fs) *FSFetcher {
	return &FSFetcher{fs: fsys}
}

// Fetch reads the file named by locator.
func (f *FSFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", unit.ErrTransport, err)
	}

	data, err := afero.ReadFile(f.fs, locator)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s: %w", unit.ErrNotFound, locator, err)
		}
		return nil, fmt.Errorf("%w: file %s: %w", unit.ErrTransport, locator, err)
	}
	return data, nil
}

// NewFetcher returns the fetcher selected by cfg.Source.
// client is only used for the storage source and may be nil otherwise.
func NewFetcher(cfg Config, client storage.Client, bucket string) (unit.Fetcher, error) {
	switch cfg.Source {
	case SourceFS:
		return NewFSFetcher(afero.NewOsFs()), nil
	case SourceStorage:
		if client == nil {
			return nil, errors.New("storage source requires a storage client")
		}
		return NewStorageFetcher(client, bucket), nil
	default:
		return nil, fmt.Errorf("unknown unit source %q", cfg.Source)
	}
}
