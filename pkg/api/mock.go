package api

import (
	"context"

	"tablero/pkg/board"
)

type mockCache struct {
	Snap            *board.Snapshot
	Err             error
	GetCalls        int
	InvalidateCalls int
}

func (m *mockCache) Get(ctx context.Context) (*board.Snapshot, error) {
	m.GetCalls++
	return m.Snap, m.Err
}
func (m *mockCache) Invalidate(ctx context.Context) {
	m.InvalidateCalls++
}

type moveCall struct {
	ID   string
	From string
	To   string
}

type mockMover struct {
	MoveFunc func(ctx context.Context, id, from, to string) error
	Calls    []moveCall
}

func (m *mockMover) Move(ctx context.Context, id, from, to string) error {
	m.Calls = append(m.Calls, moveCall{ID: id, From: from, To: to})
	if m.MoveFunc == nil {
		return nil
	}
	return m.MoveFunc(ctx, id, from, to)
}
