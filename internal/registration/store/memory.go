package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"vofmun/pkg/platform/sentinel"
)

// MemoryStore is an in-memory UserStore for tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]UserRow
	emails map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		rows:   make(map[int64]UserRow),
		emails: make(map[string]int64),
	}
}

func (s *MemoryStore) Insert(_ context.Context, row UserRow) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(row.Email)
	if _, exists := s.emails[key]; exists {
		return 0, fmt.Errorf("insert user %s: %w", row.Email, sentinel.ErrConflict)
	}

	row.ID = s.nextID
	row.CreatedAt = time.Now().UTC()
	s.nextID++
	s.rows[row.ID] = row
	s.emails[key] = row.ID
	return row.ID, nil
}

func (s *MemoryStore) List(_ context.Context) ([]UserRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]UserRow, 0, len(s.rows))
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

func (s *MemoryStore) UpdatePaymentStatus(_ context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
	}
	row.PaymentStatus = status
	s.rows[id] = row
	return nil
}
