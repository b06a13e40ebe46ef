// Package optimistic implements the apply-locally, confirm-remotely pattern
// used on cart mutations: the cached snapshot is patched before the backend
// call, and only that specific patch is reverted if the call fails. Reverts
// are keyed by operation id so unrelated in-flight mutations can never undo
// each other's work.
package optimistic

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker records the inverse of every staged patch until the backend
// confirms or rejects it.
type Tracker[T any] struct {
	mu      sync.Mutex
	reverts map[string]func(*T)
}

func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{reverts: make(map[string]func(*T))}
}

// Stage applies the patch to state and registers its inverse, returning the
// operation id used to settle it later.
func (t *Tracker[T]) Stage(state *T, apply, revert func(*T)) string {
	opID := uuid.NewString()

	t.mu.Lock()
	t.reverts[opID] = revert
	t.mu.Unlock()

	apply(state)
	return opID
}

// Commit discards the stored inverse once the backend has confirmed the
// mutation.
func (t *Tracker[T]) Commit(opID string) {
	t.mu.Lock()
	delete(t.reverts, opID)
	t.mu.Unlock()
}

// Revert undoes exactly the patch staged under opID, leaving every other
// pending patch in place. Settling the same operation twice is a no-op.
func (t *Tracker[T]) Revert(opID string, state *T) bool {
	t.mu.Lock()
	revert, ok := t.reverts[opID]
	delete(t.reverts, opID)
	t.mu.Unlock()

	if !ok {
		return false
	}
	revert(state)
	return true
}

// Pending reports how many staged patches are still unsettled.
func (t *Tracker[T]) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.reverts)
}
