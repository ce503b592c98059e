package memory

import (
	"context"
	"slices"
	"sync"
)

type inMemory struct {
	mu          sync.RWMutex
	storage     map[string][]Message
	maxMessages int
}

// NewMemoryStore keeps threads in process. maxMessages <= 0 disables the cap.
func NewMemoryStore(maxMessages int) Store {
	return &inMemory{maxMessages: maxMessages}
}

func (m *inMemory) Messages(_ context.Context, threadID string) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.storage[threadID]), nil
}

func (m *inMemory) Append(_ context.Context, threadID string, msgs ...Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]Message)
	}
	m.storage[threadID] = capped(append(m.storage[threadID], msgs...), m.maxMessages)
	return nil
}

func (m *inMemory) Reset(_ context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.storage, threadID)
	return nil
}
