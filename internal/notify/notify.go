// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package notify queues transient toast notifications per browser session.

A toast is pushed by a handler that redirects (for example after a resident
is created, or when a detail lookup fails) and drained by the next page
render of the same session. Undelivered toasts expire after a short TTL.

Backends:

  - MemoryStore: process-local, the default.
  - RedisStore: shared between replicas, selected when REDIS_URL is set.
*/
package notify

import (
	"context"
	"sync"
	"time"
)

// Kind is the visual style of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one transient notification.
type Toast struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Success builds a success toast.
func Success(message string) Toast {
	return Toast{Kind: KindSuccess, Message: message}
}

// Error builds an error toast.
func Error(message string) Toast {
	return Toast{Kind: KindError, Message: message}
}

// Store queues toasts per session id.
type Store interface {
	// Push appends a toast to the session queue and refreshes its TTL.
	Push(ctx context.Context, sessionID string, toast Toast) error

	// Drain returns and removes every queued toast of the session, oldest first.
	Drain(ctx context.Context, sessionID string) ([]Toast, error)
}

// # Memory Backend

type memoryQueue struct {
	toasts    []Toast
	expiresAt time.Time
}

// MemoryStore keeps queues in process memory.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	queues map[string]*memoryQueue
}

// NewMemoryStore creates an empty in-memory store whose queues expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		now:    time.Now,
		queues: make(map[string]*memoryQueue),
	}
}

// Push implements [Store].
func (s *MemoryStore) Push(_ context.Context, sessionID string, toast Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	queue, ok := s.queues[sessionID]
	if !ok || now.After(queue.expiresAt) {
		queue = &memoryQueue{}
		s.queues[sessionID] = queue
	}

	queue.toasts = append(queue.toasts, toast)
	queue.expiresAt = now.Add(s.ttl)
	return nil
}

// Drain implements [Store].
func (s *MemoryStore) Drain(_ context.Context, sessionID string) ([]Toast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue, ok := s.queues[sessionID]
	if !ok {
		return nil, nil
	}
	delete(s.queues, sessionID)

	if s.now().After(queue.expiresAt) {
		return nil, nil
	}
	return queue.toasts, nil
}

// Sweep drops every expired queue and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for sessionID, queue := range s.queues {
		if now.After(queue.expiresAt) {
			delete(s.queues, sessionID)
			removed++
		}
	}
	return removed
}

// RunSweeper calls [MemoryStore.Sweep] every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
