// internal/app/client/crypto/cipher.go
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// IVSize длина nonce AES-GCM в байтах.
const IVSize = 12

// randReader подменяется в тестах.
var randReader io.Reader = rand.Reader

// Entry открытые данные записи хранилища.
// Порядок полей задает каноническую JSON-кодировку.
type Entry struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

// Sealed зашифрованная запись в том виде, в котором она хранится на сервере.
type Sealed struct {
	Ciphertext string `json:"ciphertext"` // base64
	IV         string `json:"iv"`         // base64
}

// Encrypt шифрует запись ключом сессии. Каждый вызов использует новый IV.
func Encrypt(entry Entry, key []byte) (Sealed, error) {
	plaintext, err := encodeEntry(entry)
	if err != nil {
		return Sealed{}, fmt.Errorf("%w: encode entry: %v", ErrEncryptionFailed, err)
	}
	defer ClearMemory(plaintext)

	return sealBytes(plaintext, key)
}

// Decrypt проверяет и расшифровывает запись. При ошибке открытые данные не возвращаются.
func Decrypt(sealed Sealed, key []byte) (Entry, error) {
	if sealed.Ciphertext == "" || sealed.IV == "" {
		return Entry{}, fmt.Errorf("%w: empty field", ErrMalformedRecord)
	}

	iv, err := base64.StdEncoding.DecodeString(sealed.IV)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: iv: %v", ErrMalformedRecord, err)
	}
	if len(iv) != IVSize {
		return Entry{}, fmt.Errorf("%w: iv length %d", ErrMalformedRecord, len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.Ciphertext)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: ciphertext: %v", ErrMalformedRecord, err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return Entry{}, err
	}
	if len(ciphertext) < gcm.Overhead() {
		return Entry{}, fmt.Errorf("%w: ciphertext too short", ErrMalformedRecord)
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return Entry{}, ErrAuthenticationFailed
	}
	defer ClearMemory(plaintext)

	entry, err := decodeEntry(plaintext)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}

	return entry, nil
}

func sealBytes(plaintext, key []byte) (Sealed, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return Sealed{}, err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(randReader, iv); err != nil {
		return Sealed{}, fmt.Errorf("%w: generate iv: %v", ErrEncryptionFailed, err)
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)

	return Sealed{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	return gcm, nil
}

// encodeEntry кодирует запись без HTML-экранирования символов <, > и &.
func encodeEntry(entry Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeEntry принимает только JSON-объект; null и скаляры считаются повреждением.
func decodeEntry(data []byte) (Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Entry{}, fmt.Errorf("payload is not an object")
	}

	var entry Entry
	if err := json.Unmarshal(trimmed, &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// ClearMemory затирает чувствительные данные из памяти.
func ClearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
