package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/logger"
)

// Store is the record store: CRUD access to the cigar and journal collections
// and the two persisted flags. It must be the only writer of its medium's keys.
//
// Every mutation reads the whole collection, transforms it in memory and writes
// the whole collection back. Mutations of one collection are serialized by a
// mutex so overlapping calls on the same Store cannot lose each other's updates.
// Separate Store values (or processes) sharing a medium are not coordinated here;
// the CLI holds a lockfile for that.
type Store struct {
	medium Medium
	now    func() time.Time
	newID  func() string

	cigarsMu  sync.Mutex
	journalMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for addedDate and date stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the generator for record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// New creates a record store over m.
func New(m Medium, opts ...Option) *Store {
	s := &Store{
		medium: m,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(constants.ISOTimestampFormat)
}

// readCollection returns the decoded collection stored under key. Medium failures are
// returned; an absent key or an undecodable payload yields an empty collection.
func readCollection[T any](ctx context.Context, m Medium, key string) ([]T, error) {
	raw, found, err := m.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if !found || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Discarding unreadable collection payload", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// listCollection is readCollection with read failures degraded to an empty collection.
func listCollection[T any](ctx context.Context, m Medium, key string) []T {
	items, err := readCollection[T](ctx, m, key)
	if err != nil {
		logger.Warn("Failed to read collection", "key", key, "error", err)
		return []T{}
	}
	return items
}

// mutateCollection runs one read-modify-write cycle on key while holding mu.
// Errors returned by fn are passed through unchanged and nothing is written.
func mutateCollection[T any](ctx context.Context, s *Store, mu *sync.Mutex, key, op string, fn func([]T) ([]T, error)) ([]T, error) {
	mu.Lock()
	defer mu.Unlock()

	items, err := readCollection[T](ctx, s.medium, key)
	if err != nil {
		return nil, &WriteError{Op: op, Key: key, Err: fmt.Errorf("read %s: %w", key, err)}
	}

	next, err := fn(items)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return nil, &WriteError{Op: op, Key: key, Err: fmt.Errorf("encode %s: %w", key, err)}
	}
	if err := s.medium.Set(ctx, key, string(data)); err != nil {
		logger.Error("Failed to write collection", "op", op, "key", key, "error", err)
		return nil, &WriteError{Op: op, Key: key, Err: err}
	}

	logger.Debug("Collection written", "op", op, "key", key, "count", len(next))
	return next, nil
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}

func findByID[T any](items []T, id string, idOf func(T) string) (int, bool) {
	for i, item := range items {
		if idOf(item) == id {
			return i, true
		}
	}
	return -1, false
}

// ClearAll removes all four keys. A medium that fails part way may leave some keys removed.
func (s *Store) ClearAll(ctx context.Context) error {
	s.cigarsMu.Lock()
	defer s.cigarsMu.Unlock()
	s.journalMu.Lock()
	defer s.journalMu.Unlock()

	if err := s.medium.MultiRemove(ctx, constants.AllKeys...); err != nil {
		logger.Error("Failed to clear data", "error", err)
		return &WriteError{Op: "clear all", Err: err}
	}

	logger.Info("All data cleared")
	return nil
}
