package storage

import (
	"context"
	"io"
)

// Containers used by the file service.
const (
	ContainerFiles      = "files"
	ContainerThumbnails = "thumbnails"
)

// Storage is the collaborator that holds file payloads. The services only
// record metadata; every byte goes through this interface.
type Storage interface {
	Upload(ctx context.Context, container string, name string, content io.Reader) error
	Download(ctx context.Context, container string, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, container string, name string) error
	Copy(ctx context.Context, container string, srcName string, dstName string) error
}
