package state

import (
	"context"

	"promptdojo/internal/progress"
)

// Store is the durable-storage collaborator behind the progress store.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Load(ctx context.Context, userID string) (*progress.UserProgress, error)
	Save(ctx context.Context, userID string, p *progress.UserProgress) error
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	Close() error
}
