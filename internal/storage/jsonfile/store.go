package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

const fileVersion = 1

var (
	ErrNotInitialized = errors.New("storage not initialized, run 'humidor init' first")
	ErrNotLoaded      = errors.New("storage not loaded")
)

type document struct {
	Version int               `json:"version"`
	Keys    map[string]string `json:"keys"`
}

// Store keeps every key in one JSON document that is rewritten on each change.
type Store struct {
	path string

	mu   sync.Mutex
	keys map[string]string
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates an empty document, or loads the existing one.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(map[string]string{}); err != nil {
		return err
	}
	s.keys = map[string]string{}
	return nil
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > fileVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade humidor", doc.Version, fileVersion)
	}
	if doc.Keys == nil {
		doc.Keys = map[string]string{}
	}

	s.mu.Lock()
	s.keys = doc.Keys
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// save writes keys to a temporary file and renames it over the document.
func (s *Store) save(keys map[string]string) error {
	data, err := json.MarshalIndent(document{Version: fileVersion, Keys: keys}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.keys[key]
	return value, ok, nil
}

// Set persists the change before it becomes visible to Get.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys == nil {
		return ErrNotLoaded
	}

	next := maps.Clone(s.keys)
	next[key] = value
	if err := s.save(next); err != nil {
		return err
	}
	s.keys = next
	return nil
}

// MultiRemove drops keys with a single rewrite of the document.
func (s *Store) MultiRemove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys == nil {
		return ErrNotLoaded
	}

	next := maps.Clone(s.keys)
	for _, k := range keys {
		delete(next, k)
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.keys = next
	return nil
}
