package storage

import "context"

// Storage uploads a receipt file and returns its public URL.
type Storage interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}
