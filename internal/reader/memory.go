package reader

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
)

// MemoryStore is an in-process DatasetStore, used by tests and by serve's
// demo mode.
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	ingests  []IngestRun
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{datasets: make(map[string]*Dataset)}
}

func (m *MemoryStore) GetDataset(_ context.Context, path string) (*Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, ok := m.datasets[path]
	if !ok {
		return nil, eris.Errorf("reader: dataset %q not found", path)
	}
	return ds, nil
}

func (m *MemoryStore) PutDataset(_ context.Context, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[ds.Path] = ds
	return nil
}

func (m *MemoryStore) ListDatasets(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.datasets))
	for p := range m.datasets {
		paths = append(paths, p)
	}
	return paths, nil
}

func (m *MemoryStore) LogIngest(_ context.Context, run IngestRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingests = append(m.ingests, run)
	return nil
}

// Ingests returns the recorded ingest runs.
func (m *MemoryStore) Ingests() []IngestRun {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]IngestRun, len(m.ingests))
	copy(out, m.ingests)
	return out
}

func (m *MemoryStore) Close() error { return nil }
