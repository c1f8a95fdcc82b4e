// pkg/storage/storage.go

// Package storage persists rendered invoice files.
package storage

import "context"

// Store saves a rendered document under name and reports where it went.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (location string, err error)
}
