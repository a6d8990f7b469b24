package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{
			name:  "full entry",
			entry: Entry{Site: "example.com", Username: "alice", Password: "hunter2", Notes: "work"},
		},
		{
			name:  "empty fields",
			entry: Entry{},
		},
		{
			name:  "unicode and quotes",
			entry: Entry{Site: "пример.рф", Username: `"bob"`, Password: "p@ss\nword", Notes: "🔐"},
		},
		{
			name:  "long notes",
			entry: Entry{Site: "a", Notes: strings.Repeat("x", 10000)},
		},
	}

	key := testKey(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Encrypt(tt.entry, key)
			require.NoError(t, err)

			got, err := Decrypt(sealed, key)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, got)
		})
	}
}

func TestEncrypt_FreshIV(t *testing.T) {
	key := testKey(2)
	entry := Entry{Site: "example.com", Password: "secret"}

	first, err := Encrypt(entry, key)
	require.NoError(t, err)
	second, err := Encrypt(entry, key)
	require.NoError(t, err)

	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)

	iv, err := base64.StdEncoding.DecodeString(first.IV)
	require.NoError(t, err)
	assert.Len(t, iv, IVSize)
}

func TestEncrypt_Errors(t *testing.T) {
	t.Run("short key", func(t *testing.T) {
		_, err := Encrypt(Entry{Site: "a"}, []byte("short"))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("random source failure", func(t *testing.T) {
		orig := randReader
		randReader = failingReader{}
		defer func() { randReader = orig }()

		sealed, err := Encrypt(Entry{Site: "a"}, testKey(3))
		assert.ErrorIs(t, err, ErrEncryptionFailed)
		assert.Empty(t, sealed.Ciphertext)
	})
}

func TestDecrypt_KeySeparation(t *testing.T) {
	sealed, err := Encrypt(Entry{Site: "example.com"}, testKey(4))
	require.NoError(t, err)

	got, err := Decrypt(sealed, testKey(5))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, Entry{}, got)
}

func TestDecrypt_TamperDetection(t *testing.T) {
	key := testKey(6)
	sealed, err := Encrypt(Entry{Site: "example.com", Password: "secret"}, key)
	require.NoError(t, err)

	flip := func(s string, idx int) string {
		raw, err := base64.StdEncoding.DecodeString(s)
		require.NoError(t, err)
		raw[idx] ^= 0x01
		return base64.StdEncoding.EncodeToString(raw)
	}

	t.Run("ciphertext byte", func(t *testing.T) {
		_, err := Decrypt(Sealed{Ciphertext: flip(sealed.Ciphertext, 0), IV: sealed.IV}, key)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("tag byte", func(t *testing.T) {
		raw, _ := base64.StdEncoding.DecodeString(sealed.Ciphertext)
		_, err := Decrypt(Sealed{Ciphertext: flip(sealed.Ciphertext, len(raw)-1), IV: sealed.IV}, key)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("iv byte", func(t *testing.T) {
		_, err := Decrypt(Sealed{Ciphertext: sealed.Ciphertext, IV: flip(sealed.IV, 5)}, key)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestDecrypt_MalformedRecord(t *testing.T) {
	key := testKey(7)
	valid, err := Encrypt(Entry{Site: "a"}, key)
	require.NoError(t, err)

	tests := []struct {
		name   string
		sealed Sealed
	}{
		{name: "empty ciphertext", sealed: Sealed{IV: valid.IV}},
		{name: "empty iv", sealed: Sealed{Ciphertext: valid.Ciphertext}},
		{name: "bad base64 iv", sealed: Sealed{Ciphertext: valid.Ciphertext, IV: "%%%"}},
		{name: "bad base64 ciphertext", sealed: Sealed{Ciphertext: "not base64!", IV: valid.IV}},
		{
			name:   "short iv",
			sealed: Sealed{Ciphertext: valid.Ciphertext, IV: base64.StdEncoding.EncodeToString(make([]byte, 8))},
		},
		{
			name:   "long iv",
			sealed: Sealed{Ciphertext: valid.Ciphertext, IV: base64.StdEncoding.EncodeToString(make([]byte, 16))},
		},
		{
			name:   "ciphertext shorter than tag",
			sealed: Sealed{Ciphertext: base64.StdEncoding.EncodeToString([]byte("tiny")), IV: valid.IV},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decrypt(tt.sealed, key)
			assert.ErrorIs(t, err, ErrMalformedRecord)
			assert.Equal(t, Entry{}, got)
		})
	}
}

func TestDecrypt_CorruptPayload(t *testing.T) {
	key := testKey(8)

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "not json", plaintext: "definitely not json"},
		{name: "json null", plaintext: "null"},
		{name: "json array", plaintext: `["site"]`},
		{name: "wrong field type", plaintext: `{"site": 42}`},
		{name: "truncated object", plaintext: `{"site": "a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := sealBytes([]byte(tt.plaintext), key)
			require.NoError(t, err)

			got, err := Decrypt(sealed, key)
			assert.ErrorIs(t, err, ErrCorruptPayload)
			assert.Equal(t, Entry{}, got)
		})
	}
}

func TestDecrypt_ForeignRecordShape(t *testing.T) {
	key := testKey(9)

	// Extra fields from a newer client are tolerated, missing ones default to empty.
	sealed, err := sealBytes([]byte(`{"site":"a","username":"b","extra":true}`), key)
	require.NoError(t, err)

	got, err := Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, Entry{Site: "a", Username: "b"}, got)
}

// openPlain расшифровывает запись без разбора JSON.
func openPlain(t *testing.T, sealed Sealed, key []byte) string {
	t.Helper()

	iv, err := base64.StdEncoding.DecodeString(sealed.IV)
	require.NoError(t, err)
	ct, err := base64.StdEncoding.DecodeString(sealed.Ciphertext)
	require.NoError(t, err)
	gcm, err := newGCM(key)
	require.NoError(t, err)
	plain, err := gcm.Open(nil, iv, ct, nil)
	require.NoError(t, err)

	return string(plain)
}

func TestEncrypt_PlaintextEncoding(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "canonical field order",
			entry: Entry{Site: "s", Username: "u", Password: "p", Notes: "n"},
			want:  `{"site":"s","username":"u","password":"p","notes":"n"}`,
		},
		{
			name:  "html characters are not escaped",
			entry: Entry{Site: "<a&b>", Username: "u", Password: "p<>&", Notes: "x & y"},
			want:  `{"site":"<a&b>","username":"u","password":"p<>&","notes":"x & y"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := testKey(10)
			sealed, err := Encrypt(tt.entry, key)
			require.NoError(t, err)

			plain := openPlain(t, sealed, key)
			assert.Equal(t, tt.want, plain)
			assert.NotContains(t, plain, `\u00`)

			got, err := Decrypt(sealed, key)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, got)
		})
	}
}

func TestClearMemory(t *testing.T) {
	data := []byte("sensitive")
	ClearMemory(data)
	assert.Equal(t, make([]byte, len("sensitive")), data)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}
