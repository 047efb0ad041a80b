package storage

import (
	"context"
	"io"
)

// Service stores sample photos in remote object storage and hands back the
// public URL the web client saves on the sample record.
type Service interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}
