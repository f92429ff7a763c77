package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/init-pkg/quiz-import/internal/config"
)

// ImageStore is the durable home of committed question and option pictures.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) // returns canonical key
	Delete(ctx context.Context, key string) error
}

func New(cfg *config.Config) (ImageStore, error) {
	switch cfg.Storage.Driver {
	case "", "fs":
		return NewFSStore(cfg.Storage.BasePath)
	case "minio":
		return NewMinioStore(cfg.Storage.Minio)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Storage.Driver)
	}
}
