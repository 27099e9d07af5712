package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"fraudscope/internal/config"
	"fraudscope/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for local runs and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	alerts       []models.Alert
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) InsertTransaction(_ context.Context, tx *models.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = uuid.NewString()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now().UTC()
	}
	s.transactions = append(s.transactions, *tx)
	return tx.ID, nil
}

func (s *MemoryStore) InsertAlert(_ context.Context, alert *models.Alert) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert.ID = uuid.NewString()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = s.now().UTC()
	}
	stored := *alert
	stored.Tags = slices.Clone(alert.Tags)
	s.alerts = append(s.alerts, stored)
	return alert.ID, nil
}

func (s *MemoryStore) FindTransactions(_ context.Context, limit int) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.transactions, limit), nil
}

func (s *MemoryStore) FindAlerts(_ context.Context, limit int) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.alerts, limit), nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Collections(context.Context) ([]string, error) {
	return []string{models.CollectionTransaction, models.CollectionAlert}, nil
}

func (s *MemoryStore) Name() string { return config.DriverMemory }

func (s *MemoryStore) Close() error { return nil }

func newestFirst[T any](docs []T, limit int) []T {
	n := min(limit, len(docs))
	out := make([]T, 0, max(n, 0))
	for i := len(docs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, docs[i])
	}
	return out
}
