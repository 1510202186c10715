package storage

import (
	"context"
	"errors"
)

// ErrWorldNotFound is returned when no world document exists under a name.
var ErrWorldNotFound = errors.New("world not found")

// Storage hands out world documents. Worlds are read once at startup; session
// progress is never stored.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// World documents, addressed by name. The name's extension selects the
	// document format.
	GetWorldDocument(ctx context.Context, name string) ([]byte, error)
	ListWorlds(ctx context.Context) ([]string, error)
}
