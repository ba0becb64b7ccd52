package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores payloads on the local filesystem under basePath/container.
type Local struct {
	basePath string
}

func NewLocal(basePath string) (*Local, error) {
	for _, container := range []string{ContainerFiles, ContainerThumbnails} {
		if err := os.MkdirAll(filepath.Join(basePath, container), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", container, err)
		}
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) objectPath(container, name string) string {
	return filepath.Join(l.basePath, container, filepath.Base(name))
}

func (l *Local) Upload(_ context.Context, container string, name string, content io.Reader) error {
	path := l.objectPath(container, name)
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return err
	}
	return dst.Close()
}

func (l *Local) Download(_ context.Context, container string, name string) (io.ReadCloser, error) {
	return os.Open(l.objectPath(container, name))
}

func (l *Local) Delete(_ context.Context, container string, name string) error {
	err := os.Remove(l.objectPath(container, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *Local) Copy(ctx context.Context, container string, srcName string, dstName string) error {
	src, err := l.Download(ctx, container, srcName)
	if err != nil {
		return err
	}
	defer src.Close()
	return l.Upload(ctx, container, dstName, src)
}
