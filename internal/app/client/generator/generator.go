// Package generator создает случайные пароли для новых записей.
package generator

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?/~`"

	// lookAlikes символы, которые легко спутать при чтении.
	lookAlikes = "iIl1oO0"

	MinLength     = 8
	MaxLength     = 64
	DefaultLength = 16
)

var (
	ErrLength     = errors.New("password length must be between 8 and 64")
	ErrNoCharsets = errors.New("no character classes selected")
)

var randReader io.Reader = rand.Reader

type Options struct {
	Length            int
	Lowercase         bool
	Uppercase         bool
	Digits            bool
	Symbols           bool
	ExcludeLookAlikes bool
}

func DefaultOptions() Options {
	return Options{
		Length:            DefaultLength,
		Lowercase:         true,
		Uppercase:         true,
		Digits:            true,
		Symbols:           true,
		ExcludeLookAlikes: true,
	}
}

func (o Options) alphabet() string {
	var b strings.Builder
	if o.Lowercase {
		b.WriteString(lowercase)
	}
	if o.Uppercase {
		b.WriteString(uppercase)
	}
	if o.Digits {
		b.WriteString(digits)
	}
	if o.Symbols {
		b.WriteString(symbols)
	}

	chars := b.String()
	if o.ExcludeLookAlikes {
		chars = strings.Map(func(r rune) rune {
			if strings.ContainsRune(lookAlikes, r) {
				return -1
			}
			return r
		}, chars)
	}

	return chars
}

// Generate возвращает пароль из выбранных классов символов.
// Выбор символа равномерный, без смещения по модулю.
func Generate(o Options) (string, error) {
	if o.Length < MinLength || o.Length > MaxLength {
		return "", ErrLength
	}

	chars := o.alphabet()
	if chars == "" {
		return "", ErrNoCharsets
	}

	limit := big.NewInt(int64(len(chars)))
	out := make([]byte, o.Length)
	for i := range out {
		n, err := rand.Int(randReader, limit)
		if err != nil {
			return "", err
		}
		out[i] = chars[n.Int64()]
	}

	return string(out), nil
}
