// Package keystore хранит ключ сессии разблокированного хранилища.
//
// Ключ держится только в памяти процесса в виде base64-строки,
// Get восстанавливает сырые байты перед каждой криптографической операцией.
package keystore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
)

var ErrEmpty = errors.New("session key is not set")

// Store держит не более одного ключа, последняя запись побеждает.
type Store interface {
	Get() ([]byte, error)
	Set(key []byte)
	Clear()
}

// MemoryStore простое хранилище ключа в памяти.
type MemoryStore struct {
	mu      sync.RWMutex
	encoded string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() ([]byte, error) {
	s.mu.RLock()
	encoded := s.encoded
	s.mu.RUnlock()

	if encoded == "" {
		return nil, ErrEmpty
	}

	return decode(encoded)
}

func (s *MemoryStore) Set(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.encoded = base64.StdEncoding.EncodeToString(key)
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.encoded = ""
}

func decode(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode session key: %w", err)
	}

	return key, nil
}
