package keystore

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// EnclaveStore держит ключ в зашифрованном анклаве memguard.
// Открытое значение существует только внутри Get.
type EnclaveStore struct {
	mu      sync.Mutex
	enclave *memguard.Enclave
}

func NewEnclave() *EnclaveStore {
	return &EnclaveStore{}
}

func (s *EnclaveStore) Get() ([]byte, error) {
	s.mu.Lock()
	enclave := s.enclave
	s.mu.Unlock()

	if enclave == nil {
		return nil, ErrEmpty
	}

	buf, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()

	return decode(string(buf.Bytes()))
}

func (s *EnclaveStore) Set(key []byte) {
	encoded := []byte(base64.StdEncoding.EncodeToString(key))

	s.mu.Lock()
	defer s.mu.Unlock()

	// NewEnclave затирает encoded.
	s.enclave = memguard.NewEnclave(encoded)
}

func (s *EnclaveStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enclave = nil
}

// Purge уничтожает все защищенные буферы процесса. Вызывается при выходе.
func Purge() {
	memguard.Purge()
}
