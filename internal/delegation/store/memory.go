package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory DelegationStore for tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]DelegationRow
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, rows: make(map[int64]DelegationRow)}
}

func (s *MemoryStore) Insert(_ context.Context, row DelegationRow) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row.ID = s.nextID
	row.CreatedAt = time.Now().UTC()
	s.nextID++
	s.rows[row.ID] = row
	return row.ID, nil
}

func (s *MemoryStore) List(_ context.Context) ([]DelegationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DelegationRow, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
