package store

import (
	"context"
	"sync"
)

// Backend persists whole collections as opaque JSON documents.
type Backend interface {
	// Get returns the stored document and whether it exists.
	Get(ctx context.Context, c Collection) ([]byte, bool, error)
	// GetAll returns every stored document as of one point in time.
	GetAll(ctx context.Context) (map[Collection][]byte, error)
	// Put replaces every given collection in one atomic write.
	Put(ctx context.Context, docs map[Collection][]byte) error
	Close() error
}

// Memory is an in-process Backend used by tests and throwaway sessions.
type Memory struct {
	mu   sync.RWMutex
	docs map[Collection][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[Collection][]byte)}
}

func (m *Memory) Get(_ context.Context, c Collection) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[c]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (m *Memory) GetAll(_ context.Context) (map[Collection][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Collection][]byte, len(m.docs))
	for c, doc := range m.docs {
		buf := make([]byte, len(doc))
		copy(buf, doc)
		out[c] = buf
	}
	return out, nil
}

func (m *Memory) Put(_ context.Context, docs map[Collection][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c, doc := range docs {
		buf := make([]byte, len(doc))
		copy(buf, doc)
		m.docs[c] = buf
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
