package db

import (
	"context"
	"sort"
	"sync"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

// MemoryStore keeps leads in process memory. Used when no DATABASE_URL is
// configured and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	leads []models.Lead
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertLead(_ context.Context, lead models.Lead) (models.Lead, error) {
	lead = stampLead(lead)
	m.mu.Lock()
	m.leads = append(m.leads, lead)
	m.mu.Unlock()
	return lead, nil
}

func (m *MemoryStore) ListRecentLeads(_ context.Context, limit int) ([]models.Lead, error) {
	m.mu.RLock()
	out := make([]models.Lead, 0, len(m.leads))
	for i := len(m.leads) - 1; i >= 0; i-- {
		out = append(out, m.leads[i])
	}
	m.mu.RUnlock()

	// Reverse insertion order first so equal timestamps stay newest first.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n := clampLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() {}
