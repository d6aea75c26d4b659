package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// TokenKey is the single key the credential lives under, in every store
const TokenKey = "authToken"

// TokenStore persists the one credential slot
type TokenStore interface {
	// Load returns the stored token, or "" when the slot is empty.
	Load() (string, error)
	Store(token string) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear() error
}

// MemoryStore keeps the token in process memory
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates a store holding token
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Store(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Store("")
}

// BadgerStore keeps the token in a local badger database, so the terminal
// client stays logged in across runs.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) the store at dir. An empty dir opens an
// in-memory database.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(TokenKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

func (s *BadgerStore) Store(token string) error {
	if token == "" {
		return s.Clear()
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(TokenKey), []byte(token))
	}); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (s *BadgerStore) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(TokenKey))
	})
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
