// Copyright (c) 2026 Residents Book. All rights reserved.

package directory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Abhay4510/residents-book/internal/platform/metrics"
	"github.com/Abhay4510/residents-book/internal/resident"
)

// DefaultFetchLimit is the page size of the single list request that loads
// the whole directory.
const DefaultFetchLimit = 1000

// # Store Definition

// Store is the in-memory directory collection.
//
// # Ordering
//
// After a load the collection is in server order. Every successful creation
// is prepended, so the newest local creation is always first. The store
// never filters, re-orders, or removes entries.
//
// # Concurrency
//
// Store is safe for concurrent use. Writes only happen in response to a
// completed upstream request, under the write lock.
type Store struct {
	api     API
	limit   int
	logger  *slog.Logger
	metrics *metrics.Metrics
	loads   singleflight.Group

	mu        sync.RWMutex
	residents []resident.Resident
	isLoading bool
	loaded    bool
	loadErr   error
	loadedAt  time.Time

	// createdDuringLoad keeps creations that completed while a list request
	// was in flight, so a stale list cannot drop them.
	createdDuringLoad []resident.Resident
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithFetchLimit sets the page size of the load request.
func WithFetchLimit(limit int) StoreOption {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithLogger sets the logger used for load outcomes.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics records the directory size on m.
func WithMetrics(m *metrics.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates an empty store. It reports itself as loading until the
// first [Store.Load] completes.
func NewStore(api API, opts ...StoreOption) *Store {
	store := &Store{
		api:       api,
		limit:     DefaultFetchLimit,
		logger:    slog.Default(),
		residents: []resident.Resident{},
		isLoading: true,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// # Snapshot

// Snapshot is a consistent, caller-owned copy of the store state.
type Snapshot struct {
	Residents []resident.Resident
	IsLoading bool
	Loaded    bool
	LoadErr   error
	LoadedAt  time.Time
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Residents: slices.Clone(s.residents),
		IsLoading: s.isLoading,
		Loaded:    s.loaded,
		LoadErr:   s.loadErr,
		LoadedAt:  s.loadedAt,
	}
}

// Len returns the number of residents held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.residents)
}

// # Loading

// Load fetches the full directory in one request and replaces the collection.
//
// The loading flag is cleared whatever the outcome. On failure the previous
// collection is kept (empty on first load), the error is logged, and it is
// recorded for [Snapshot.LoadErr]. Concurrent calls share one request.
func (s *Store) Load(ctx context.Context) error {
	_, err, _ := s.loads.Do("load", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

// Reload is the user-triggered retry of [Store.Load].
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.createdDuringLoad = nil
	s.mu.Unlock()

	started := time.Now()
	result, err := s.api.List(ctx, 1, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.isLoading = false

	if err != nil {
		s.loadErr = err
		s.createdDuringLoad = nil
		s.logger.ErrorContext(ctx, "directory_load_failed",
			slog.Any("error", err),
			slog.Int("kept", len(s.residents)),
		)
		return err
	}

	residents := slices.Clone(result.Residents)
	for _, created := range s.createdDuringLoad {
		if !containsID(residents, created.ID) {
			residents = append([]resident.Resident{created}, residents...)
		}
	}

	s.residents = residents
	s.createdDuringLoad = nil
	s.loaded = true
	s.loadErr = nil
	s.loadedAt = time.Now()
	s.metrics.SetDirectorySize(len(s.residents))

	s.logger.InfoContext(ctx, "directory_loaded",
		slog.Int("count", len(s.residents)),
		slog.Int("total_upstream", result.Pagination.TotalResidents),
		slog.Duration("took", time.Since(started)),
	)

	if result.Pagination.TotalResidents > len(result.Residents) {
		s.logger.WarnContext(ctx, "directory_truncated",
			slog.Int("fetch_limit", s.limit),
			slog.Int("total_upstream", result.Pagination.TotalResidents),
		)
	}

	return nil
}

// # Mutation

// Prepend puts a newly created resident at the front of the collection.
//
// It reports false, and changes nothing, when a resident with the same id
// is already held.
func (s *Store) Prepend(created resident.Resident) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if containsID(s.residents, created.ID) {
		return false
	}

	s.residents = append([]resident.Resident{created}, s.residents...)
	if s.isLoading {
		s.createdDuringLoad = append(s.createdDuringLoad, created)
	}
	s.metrics.SetDirectorySize(len(s.residents))

	return true
}

func containsID(residents []resident.Resident, id string) bool {
	return slices.ContainsFunc(residents, func(r resident.Resident) bool {
		return r.ID == id
	})
}
