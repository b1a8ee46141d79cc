package board

import "context"

// StageUpdater is the write half of the record store.
type StageUpdater interface {
	UpdateStage(ctx context.Context, id, newStage string) error
}

// Mover executes one user-initiated stage transition: locate the row,
// rewrite its stage cell, drop the cached snapshot so the next render
// re-fetches. One move per request, no retry, no rollback; the write is
// a single cell so a failure leaves nothing half-done.
type Mover struct {
	store StageUpdater
	cache SnapshotCache
}

func NewMover(store StageUpdater, cache SnapshotCache) *Mover {
	return &Mover{store: store, cache: cache}
}

// Move moves ticket id from stage from to stage to. Selecting the stage
// a card is already in is a no-op: no write, no invalidation.
func (m *Mover) Move(ctx context.Context, id, from, to string) error {
	if to == from {
		return nil
	}
	if err := m.store.UpdateStage(ctx, id, to); err != nil {
		return err
	}
	m.cache.Invalidate(ctx)
	return nil
}
