package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrLoginLength    = errors.New("login length out of range")
	ErrLoginCharset   = errors.New("login contains forbidden character")
	ErrPasswordLength = errors.New("password length out of range")
	ErrPasswordWeak   = errors.New("password is too weak")
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 64
	MinPasswordLen = 8
	// MaxPasswordLen предел bcrypt в байтах, длиннее GenerateFromPassword не примет.
	MaxPasswordLen = 72
)

// loginSymbols допустимые символы логина помимо букв и цифр, логином может быть email.
const loginSymbols = "_-.@+"

// Validator проверяет учетные данные. PIN хранилища проверяется в пакете pin.
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
}

// charClass класс символов, который обязан встречаться в пароле.
type charClass struct {
	name string
	in   func(rune) bool
}

var requiredClasses = []charClass{
	{name: "lowercase letter", in: unicode.IsLower},
	{name: "uppercase letter", in: unicode.IsUpper},
	{name: "digit", in: unicode.IsDigit},
	{name: "special character", in: isSpecial},
}

type CredentialsValidator struct {
	classes []charClass
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{classes: requiredClasses}
}

// ValidateRegister сообщает сразу обо всех проблемах логина и пароля.
func (v *CredentialsValidator) ValidateRegister(login, password string) error {
	return errors.Join(v.ValidateLogin(login), v.ValidatePassword(password))
}

func (v *CredentialsValidator) ValidateLogin(login string) error {
	if n := utf8.RuneCountInString(login); n < MinLoginLen || n > MaxLoginLen {
		return fmt.Errorf("%w: want %d..%d characters, got %d", ErrLoginLength, MinLoginLen, MaxLoginLen, n)
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(loginSymbols, r) {
			return fmt.Errorf("%w %q, allowed letters, digits and %q", ErrLoginCharset, r, loginSymbols)
		}
	}

	return nil
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	if n := len(password); n < MinPasswordLen || n > MaxPasswordLen {
		return fmt.Errorf("%w: want %d..%d bytes", ErrPasswordLength, MinPasswordLen, MaxPasswordLen)
	}

	var missing []string
	for _, c := range v.classes {
		if !strings.ContainsFunc(password, c.in) {
			missing = append(missing, c.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrPasswordWeak, strings.Join(missing, ", "))
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
