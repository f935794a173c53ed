// Package history keeps a bounded, per-tool log of past invocations.
// Entries live in memory and are written through to durable storage;
// a failing backend degrades the store to in-memory only.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/devbelt/toolbox-mcp/pkg/models"
	"github.com/devbelt/toolbox-mcp/pkg/storage"
	"github.com/devbelt/toolbox-mcp/pkg/types"
	"github.com/rs/zerolog"
)

type Store struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]models.HistoryEntry // newest first
	backend  storage.Storage                  // nil for in-memory only
	degraded bool
	logger   zerolog.Logger
}

type Option func(*Store)

// WithCapacity overrides the per-tool entry cap (default
// types.HistoryCapacity).
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// New creates a history store. backend may be nil, in which case history
// is session-only.
func New(backend storage.Storage, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		capacity: types.HistoryCapacity,
		entries:  make(map[string][]models.HistoryEntry),
		backend:  backend,
		logger:   logger.With().Str("component", "history").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates the in-memory log from the backend. An unreadable
// backend is treated as empty history; startup never fails on it.
func (s *Store) Load(ctx context.Context) {
	if s.backend == nil {
		return
	}

	toolIDs, err := s.backend.ListToolIDs(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not read persisted history, starting empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, toolID := range toolIDs {
		entries, err := s.backend.ListEntries(ctx, toolID, s.capacity)
		if err != nil {
			s.logger.Warn().Err(err).Msgf("skipping unreadable history for tool %s", toolID)
			continue
		}
		s.entries[toolID] = entries
	}
	s.logger.Debug().Msgf("loaded history for %d tools", len(s.entries))
}

// Append inserts the entry at the head of its tool's list and evicts the
// tail beyond capacity. The mutation is flushed to the backend before
// returning; a storage failure is logged and swallowed.
func (s *Store) Append(ctx context.Context, entry models.HistoryEntry) {
	// Stamp here, not in the backend: the in-memory copy must carry the
	// timestamp even when persistence is absent or degraded.
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	list := append([]models.HistoryEntry{entry}, s.entries[entry.ToolID]...)
	if len(list) > s.capacity {
		list = list[:s.capacity]
	}
	s.entries[entry.ToolID] = list
	s.mu.Unlock()

	s.persist(func() error {
		return s.backend.AppendEntry(ctx, &entry)
	})
}

// List returns the entries for toolID, newest first. The returned slice
// is the caller's to keep.
func (s *Store) List(toolID string) []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[toolID]
	out := make([]models.HistoryEntry, len(list))
	copy(out, list)
	return out
}

// Clear removes one tool's history. Idempotent; clearing an empty or
// unknown tool id is a no-op.
func (s *Store) Clear(ctx context.Context, toolID string) {
	s.mu.Lock()
	delete(s.entries, toolID)
	s.mu.Unlock()

	s.persist(func() error {
		return s.backend.ClearTool(ctx, toolID)
	})
}

// ClearAll removes every tool's history.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	s.entries = make(map[string][]models.HistoryEntry)
	s.mu.Unlock()

	s.persist(func() error {
		return s.backend.ClearAll(ctx)
	})
}

func (s *Store) persist(op func() error) {
	if s.backend == nil {
		return
	}
	if err := op(); err != nil {
		s.mu.Lock()
		first := !s.degraded
		s.degraded = true
		s.mu.Unlock()
		if first {
			s.logger.Warn().Err(err).Msg("history persistence failed, continuing in-memory only")
		} else {
			s.logger.Debug().Err(err).Msg("history persistence still failing")
		}
	}
}
