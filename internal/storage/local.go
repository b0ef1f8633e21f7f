package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/eMattsJ/Availarr/internal/logger"
)

const (
	configDir = ".availarr"
	orderFile = "order.json"
)

// LocalStore persists the custom provider display order as a single JSON
// document under the user's home directory. A missing or malformed file
// reads as "no custom order"; it never fails a caller.
type LocalStore struct {
	path string
	doc  document
	mu   sync.RWMutex
}

func NewLocalStore() (*LocalStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	s := &LocalStore{
		path: filepath.Join(homeDir, configDir, orderFile),
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return nil, err
	}

	s.load()
	return s, nil
}

func (s *LocalStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.LogError("LOAD_ORDER", s.path, err)
		}
		return
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		logger.LogError("UNMARSHAL_ORDER", s.path, err)
		s.doc = document{}
		return
	}

	logger.Log("Order loaded from %s (%d entries)", s.path, len(s.doc.SortOrder))
}

// Order returns the saved display order, possibly empty.
func (s *LocalStore) Order() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := make([]string, len(s.doc.SortOrder))
	copy(order, s.doc.SortOrder)
	return order
}

// SetOrder overwrites the saved display order.
func (s *LocalStore) SetOrder(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.SortOrder = make([]string, len(names))
	copy(s.doc.SortOrder, names)

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		logger.LogError("MARSHAL_ORDER", s.path, err)
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		logger.LogError("SAVE_ORDER", s.path, err)
		return err
	}

	logger.Log("Order saved to %s (%d entries)", s.path, len(names))
	return nil
}
