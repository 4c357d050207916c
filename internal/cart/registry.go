package cart

import (
	"context"
	"log/slog"
)

// Registry hands out one hydrated Store per visitor slot.
type Registry struct {
	Storage Storage
	Log     *slog.Logger
}

func Key(visitorID string) string {
	if visitorID == "" {
		return StorageKey
	}
	return StorageKey + ":" + visitorID
}

func (r *Registry) Open(ctx context.Context, visitorID string) (*Store, error) {
	s := NewStore(r.Storage, Key(visitorID), r.Log)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
