package session

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore holds the session envelope in process memory. Suitable for
// tests and for clients that do not need the session to survive restarts.
type MemoryStore struct {
	envelope *Envelope
	lock     sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Save(envelope *Envelope) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	copied := *envelope
	ms.envelope = &copied
	return nil
}

func (ms *MemoryStore) Load() (*Envelope, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	if ms.envelope == nil {
		return nil, nil
	}
	copied := *ms.envelope
	return &copied, nil
}

func (ms *MemoryStore) Clear() error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	ms.envelope = nil
	return nil
}
