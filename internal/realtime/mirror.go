// Package realtime keeps a local copy of a remote document current via the
// store's change feed. The mirror is the read side of the load-modify-save
// cycle: screens render from it instead of fetching on every interaction.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"mealmate/internal/docstore"
)

// Mirror tracks one account document. Remote pushes update the mirror while
// it is idle; while a local write is in flight, pushes are dropped and the
// write's own result becomes the next state, so a half-applied echo of the
// previous document can never clobber the pending change.
type Mirror struct {
	mu           sync.Mutex
	current      json.RawMessage
	writePending bool

	onChange    func(json.RawMessage)
	unsubscribe docstore.Unsubscribe
}

// NewMirror subscribes to the document and delivers the initial state and
// every later change to onChange. onChange runs on the store's notification
// goroutine and must not block.
func NewMirror(ctx context.Context, docs docstore.Store, kind docstore.Kind, accountID string, onChange func(json.RawMessage)) (*Mirror, error) {
	m := &Mirror{onChange: onChange}
	unsubscribe, err := docs.Subscribe(ctx, kind, accountID, m.handlePush)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", kind, err)
	}
	m.unsubscribe = unsubscribe
	return m, nil
}

func (m *Mirror) handlePush(data json.RawMessage) {
	m.mu.Lock()
	if m.writePending {
		m.mu.Unlock()
		return
	}
	m.current = data
	m.mu.Unlock()
	if m.onChange != nil {
		m.onChange(data)
	}
}

// Current returns the last applied document state, nil when the document
// does not exist.
func (m *Mirror) Current() json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// BeginWrite suspends push delivery until the write finishes.
func (m *Mirror) BeginWrite() {
	m.mu.Lock()
	m.writePending = true
	m.mu.Unlock()
}

// FinishWrite records the successful write's result as the current state
// and resumes push delivery.
func (m *Mirror) FinishWrite(result json.RawMessage) {
	m.mu.Lock()
	m.current = result
	m.writePending = false
	m.mu.Unlock()
	if m.onChange != nil {
		m.onChange(result)
	}
}

// AbortWrite resumes push delivery without changing the current state. The
// next remote push restores whatever the server holds.
func (m *Mirror) AbortWrite() {
	m.mu.Lock()
	m.writePending = false
	m.mu.Unlock()
}

// Close tears down the subscription. The mirror delivers no further
// notifications afterwards.
func (m *Mirror) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}
