/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package intent

import (
	"sync"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/errors"
)

// Registry holds registered intents keyed by their unique Key, preserving
// registration order per technology (registration order becomes panel order).
// Registration happens at process warm-up; reads are safe concurrently.
type Registry struct {
	byKey  map[Key]*Intent
	byTech map[classifier.Technology][]*Intent
	order  []*Intent

	mu sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[Key]*Intent),
		byTech: make(map[classifier.Technology][]*Intent),
		order:  make([]*Intent, 0),
	}
}

// Register adds an intent under its key. It fails with ErrCodeDuplicateKey
// if the key is already registered, and with ErrCodeInvalidSpec if the
// intent fails validation. Both are warm-up failures the process must not
// survive.
func (r *Registry) Register(i *Intent) error {
	if err := i.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, "invalid intent", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[i.Key]; exists {
		return errors.NewWithContext(errors.ErrCodeDuplicateKey,
			"intent key already registered",
			map[string]any{"key": i.Key.String()})
	}

	r.byKey[i.Key] = i
	r.byTech[i.Technology] = append(r.byTech[i.Technology], i)
	r.order = append(r.order, i)
	return nil
}

// Get returns the intent registered under key, failing with ErrCodeNotFound
// when absent.
func (r *Registry) Get(key Key) (*Intent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byKey[key]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			"intent not registered",
			map[string]any{"key": key.String()})
	}
	return i, nil
}

// ListByTechnology returns all intents for a technology in registration
// order. The returned slice is a copy; the intents themselves are shared
// and must be treated as read-only.
func (r *Registry) ListByTechnology(tech classifier.Technology) []*Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byTech[tech]
	out := make([]*Intent, len(list))
	copy(out, list)
	return out
}

// List returns all registered intents in registration order.
func (r *Registry) List() []*Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Intent, len(r.order))
	copy(out, r.order)
	return out
}

// Technologies returns the technologies with at least one registered intent,
// in first-registration order.
func (r *Registry) Technologies() []classifier.Technology {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[classifier.Technology]bool, len(r.byTech))
	out := make([]classifier.Technology, 0, len(r.byTech))
	for _, i := range r.order {
		if !seen[i.Technology] {
			seen[i.Technology] = true
			out = append(out, i.Technology)
		}
	}
	return out
}

// Len returns the number of registered intents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
