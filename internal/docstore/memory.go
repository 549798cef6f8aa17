package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store with the same snapshot semantics as the
// Firestore implementation. It backs tests and local development.
type MemoryStore struct {
	mu          sync.Mutex
	documents   map[string]json.RawMessage
	subscribers map[string]map[int]func(data json.RawMessage)
	nextSubID   int
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		documents:   make(map[string]json.RawMessage),
		subscribers: make(map[string]map[int]func(data json.RawMessage)),
	}
}

func docKey(kind Kind, accountID string) string {
	return string(kind) + "/" + accountID
}

func (s *MemoryStore) Get(ctx context.Context, kind Kind, accountID string, out any) error {
	s.mu.Lock()
	data, ok := s.documents[docKey(kind, accountID)]
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return nil
}

func (s *MemoryStore) Set(ctx context.Context, kind Kind, accountID string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	key := docKey(kind, accountID)

	s.mu.Lock()
	s.documents[key] = data
	var callbacks []func(data json.RawMessage)
	for _, cb := range s.subscribers[key] {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(data)
	}
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, kind Kind, accountID string, onChange func(data json.RawMessage)) (Unsubscribe, error) {
	key := docKey(kind, accountID)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[key] == nil {
		s.subscribers[key] = make(map[int]func(data json.RawMessage))
	}
	s.subscribers[key][id] = onChange
	current := s.documents[key]
	s.mu.Unlock()

	// Matches Firestore: the current state arrives as the first snapshot,
	// nil when no document exists yet.
	onChange(current)

	return func() {
		s.mu.Lock()
		delete(s.subscribers[key], id)
		s.mu.Unlock()
	}, nil
}
