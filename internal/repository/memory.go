package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// memSession keeps snapshots for the lifetime of the process.
type memSession struct {
	mu        sync.RWMutex
	snapshots map[string]entity.Snapshot
}

func NewMemorySessionRepository() SessionRepository {
	return &memSession{
		snapshots: make(map[string]entity.Snapshot),
	}
}

func (that *memSession) Save(_ context.Context, snapshot *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshots[snapshot.ID] = *snapshot

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot, ok := that.snapshots[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return &snapshot, nil
}
