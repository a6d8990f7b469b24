// internal/app/client/crypto/kdf.go
package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Параметры PBKDF2 общие для всех клиентов: сохраненные записи
	// расшифровываются только ключом, полученным с этими же значениями.
	DefaultIterations = 100000
	DefaultSalt       = "vault-app-salt"

	KeySize = 32 // AES-256
)

// KDF выводит ключ сессии из PIN.
type KDF struct {
	Salt       []byte
	Iterations int
}

// NewKDF возвращает KDF с параметрами приложения по умолчанию.
func NewKDF() *KDF {
	return &KDF{
		Salt:       []byte(DefaultSalt),
		Iterations: DefaultIterations,
	}
}

// Derive детерминированно выводит 256-битный ключ из PIN.
// Формат PIN здесь не проверяется, это делает вызывающая сторона.
func (k *KDF) Derive(pin string) []byte {
	if k.Iterations <= 0 || len(k.Salt) == 0 {
		panic("crypto: kdf is not configured")
	}

	return pbkdf2.Key([]byte(pin), k.Salt, k.Iterations, KeySize, sha256.New)
}
